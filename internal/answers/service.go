package answers

import (
	"context"
	"fmt"

	"github.com/noah-isme/qanda/internal/profanity"
)

// Service censors and stores answers.
type Service struct {
	store  Store
	censor profanity.Censor
}

// NewService constructs a Service.
func NewService(store Store, censor profanity.Censor) *Service {
	return &Service{store: store, censor: censor}
}

// Add censors the content and stores the answer for accountID.
func (s *Service) Add(ctx context.Context, accountID int64, in NewAnswer) (*Answer, error) {
	content, err := s.censor.Censor(ctx, in.Content)
	if err != nil {
		return nil, fmt.Errorf("answers: censor content: %w", err)
	}
	in.Content = content
	return s.store.Insert(ctx, accountID, in)
}
