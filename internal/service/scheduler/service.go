package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reminder is one stored scheduling request.
type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service keeps reminders in memory per user. The chat dispatcher only
// needs Add; List exists for future delivery integration.
type Service struct {
	mu    sync.Mutex
	items map[string][]Reminder
}

// NewService bootstraps an empty reminder book.
func NewService() *Service {
	return &Service{items: make(map[string][]Reminder)}
}

// Add stores a reminder for userID and returns it.
func (s *Service) Add(userID, text string) Reminder {
	reminder := Reminder{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.items[userID] = append(s.items[userID], reminder)
	s.mu.Unlock()

	return reminder
}

// List returns the reminders stored for userID in insertion order.
func (s *Service) List(userID string) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Reminder(nil), s.items[userID]...)
}
