package domain

import "time"

// Session is a conversation the stub assistant keeps history for
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is one stored line of a session's history
type HistoryEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Sender    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is one catalog item the stub assistant knows about
type Product struct {
	Key         string `json:"key"` // lower-case match term
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // rupiah
	Bestseller  bool   `json:"bestseller"`
}

// ServiceStats summarizes the stub assistant's stored history
type ServiceStats struct {
	TotalSessions     int `json:"total_sessions"`
	TotalUserMessages int `json:"total_user_messages"`
	CatalogProducts   int `json:"catalog_products"`
}
