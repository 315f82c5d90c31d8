package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/liliang-cn/jogjachat/internal/repository"
	"go.uber.org/zap"
)

var (
	budgetTerms     = []string{"murah", "hemat", "terjangkau", "budget", "diskon", "promo"}
	bestsellerTerms = []string{"laris", "terlaris", "favorit", "populer", "rekomendasi", "direkomendasikan"}
	listTerms       = []string{"apa saja", "daftar", "ada apa", "pilihan"}
	giftTerms       = []string{"hadiah", "kado", "buah tangan", "keluarga"}
)

// NPCService answers shop questions from the catalog and keeps per-session
// history
type NPCService struct {
	catalog     *Catalog
	sessionRepo *repository.SessionRepository
	logger      *zap.Logger
}

// NewNPCService creates a new NPC service
func NewNPCService(catalog *Catalog, sessionRepo *repository.SessionRepository, logger *zap.Logger) *NPCService {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NPCService{
		catalog:     catalog,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Ask records the user's message, answers it and records the answer
func (s *NPCService) Ask(ctx context.Context, req *domain.AskRequest) (*domain.AskResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	if err := s.sessionRepo.Ensure(ctx, sessionID); err != nil {
		return nil, err
	}

	userLine := &domain.HistoryEntry{
		SessionID: sessionID,
		Role:      domain.SenderUser,
		Content:   text,
	}
	if err := s.sessionRepo.AppendMessage(ctx, userLine); err != nil {
		return nil, err
	}

	answer := s.Answer(text)

	assistantLine := &domain.HistoryEntry{
		SessionID: sessionID,
		Role:      domain.SenderAssistant,
		Content:   answer,
	}
	if err := s.sessionRepo.AppendMessage(ctx, assistantLine); err != nil {
		return nil, err
	}

	s.logger.Debug("Answered question",
		zap.String("session_id", sessionID),
		zap.Int("length", len(answer)),
	)

	return &domain.AskResponse{Response: answer}, nil
}

// Answer picks a canned reply for text
func (s *NPCService) Answer(text string) string {
	lower := strings.ToLower(text)
	found := s.catalog.Find(lower)

	switch {
	case len(found) >= 2:
		return s.compare(found[0], found[1])
	case len(found) == 1:
		return s.describe(found[0])
	case containsAny(lower, budgetTerms):
		return s.budget()
	case containsAny(lower, bestsellerTerms):
		return s.bestsellers()
	case containsAny(lower, giftTerms):
		return s.gifts()
	case containsAny(lower, listTerms):
		return s.list()
	default:
		return "Saya bisa membantu memilih oleh-oleh khas Jogja. Tanyakan saja tentang " +
			"**bakpia**, **gudeg**, **salak pondoh** dan produk lain di toko kami."
	}
}

// Forget drops the session's history and returns how many lines were removed
func (s *NPCService) Forget(ctx context.Context, sessionID string) (int64, error) {
	if strings.TrimSpace(sessionID) == "" {
		return 0, fmt.Errorf("%w: session id is required", domain.ErrInvalidRequest)
	}
	removed, err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Conversation deleted",
		zap.String("session_id", sessionID),
		zap.Int64("removed", removed),
	)
	return removed, nil
}

// History returns the session's stored lines
func (s *NPCService) History(ctx context.Context, sessionID string) ([]*domain.HistoryEntry, error) {
	if _, err := s.sessionRepo.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetMessages(ctx, sessionID)
}

func (s *NPCService) describe(p domain.Product) string {
	return fmt.Sprintf("**%s** adalah %s. Harga: %s.", p.Name, p.Description, s.catalog.FormatPrice(p.Price))
}

// compare leaves prices out so the reply reads as a comparison
func (s *NPCService) compare(a, b domain.Product) string {
	cheaper := a
	if b.Price < a.Price {
		cheaper = b
	}
	return fmt.Sprintf("Bingung pilih **%s** atau **%s**?\n\n- **%s**: %s\n- **%s**: %s\n\n%s lebih ramah di kantong.",
		a.Name, b.Name, a.Name, a.Description, b.Name, b.Description, cheaper.Name)
}

func (s *NPCService) budget() string {
	var b strings.Builder
	b.WriteString("Pilihan yang paling hemat di toko kami:\n\n")
	for _, p := range s.catalog.Cheapest(3) {
		fmt.Fprintf(&b, "- **%s**: %s\n", p.Name, p.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *NPCService) bestsellers() string {
	names := make([]string, 0)
	for _, p := range s.catalog.Bestsellers() {
		names = append(names, "**"+p.Name+"**")
	}
	return "Yang paling laris: " + strings.Join(names, ", ") + "."
}

func (s *NPCService) gifts() string {
	return "Untuk buah tangan keluarga, **Bakpia Pathok** dan **Cokelat Monggo** selalu jadi pilihan aman."
}

func (s *NPCService) list() string {
	var b strings.Builder
	b.WriteString("Oleh-oleh yang tersedia:\n\n")
	for _, p := range s.catalog.Products() {
		fmt.Fprintf(&b, "- **%s**\n", p.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
