package service

import (
	"context"
	"strings"

	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/liliang-cn/jogjachat/internal/render"
	"github.com/liliang-cn/jogjachat/internal/repository"
)

// AdminService exposes the stub's catalog and usage figures
type AdminService struct {
	catalog     *Catalog
	sessionRepo *repository.SessionRepository
	renderer    *render.Renderer
}

// NewAdminService creates a new admin service
func NewAdminService(catalog *Catalog, sessionRepo *repository.SessionRepository) *AdminService {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &AdminService{
		catalog:     catalog,
		sessionRepo: sessionRepo,
		renderer:    render.New(),
	}
}

// ListProducts returns the catalog
func (s *AdminService) ListProducts(ctx context.Context) []domain.Product {
	return s.catalog.Products()
}

// GetStats returns usage figures
func (s *AdminService) GetStats(ctx context.Context) (*domain.ServiceStats, error) {
	sessions, err := s.sessionRepo.CountSessions(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.sessionRepo.CountMessages(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ServiceStats{
		TotalSessions:     sessions,
		TotalUserMessages: messages,
		CatalogProducts:   len(s.catalog.Products()),
	}, nil
}

// Transcript renders a stored conversation as widget HTML rows
func (s *AdminService) Transcript(ctx context.Context, sessionID string) (string, error) {
	if _, err := s.sessionRepo.Get(ctx, sessionID); err != nil {
		return "", err
	}
	entries, err := s.sessionRepo.GetMessages(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range entries {
		msg := domain.Message{
			Sender:    e.Role,
			Text:      e.Content,
			Timestamp: e.CreatedAt.UnixMilli(),
		}
		b.WriteString(s.renderer.HTML(msg))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
