package questions

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/qanda/internal/profanity"
	"github.com/noah-isme/qanda/internal/shared"
)

// Service implements question use cases.
type Service struct {
	store  Store
	censor profanity.Censor
}

// NewService constructs a Service.
func NewService(store Store, censor profanity.Censor) *Service {
	return &Service{store: store, censor: censor}
}

// List returns a page of questions.
func (s *Service) List(ctx context.Context, page shared.Pagination) ([]Question, error) {
	return s.store.List(ctx, page)
}

// Add censors and stores a question for accountID.
func (s *Service) Add(ctx context.Context, accountID int64, in NewQuestion) (*Question, error) {
	censored, err := s.censorQuestion(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.store.Insert(ctx, accountID, censored)
}

// Update replaces a question owned by accountID.
func (s *Service) Update(ctx context.Context, accountID, id int64, in NewQuestion) (*Question, error) {
	if err := s.authorize(ctx, accountID, id); err != nil {
		return nil, err
	}
	censored, err := s.censorQuestion(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, censored)
}

// Delete removes a question owned by accountID.
func (s *Service) Delete(ctx context.Context, accountID, id int64) error {
	if err := s.authorize(ctx, accountID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) authorize(ctx context.Context, accountID, id int64) error {
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if q.AccountID != accountID {
		return ErrNotOwner
	}
	return nil
}

// censorQuestion runs title and content through the filter concurrently.
func (s *Service) censorQuestion(ctx context.Context, in NewQuestion) (NewQuestion, error) {
	out := NewQuestion{Tags: in.Tags}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		title, err := s.censor.Censor(gctx, in.Title)
		if err != nil {
			return fmt.Errorf("questions: censor title: %w", err)
		}
		out.Title = title
		return nil
	})
	g.Go(func() error {
		content, err := s.censor.Censor(gctx, in.Content)
		if err != nil {
			return fmt.Errorf("questions: censor content: %w", err)
		}
		out.Content = content
		return nil
	})
	if err := g.Wait(); err != nil {
		return NewQuestion{}, err
	}
	return out, nil
}
