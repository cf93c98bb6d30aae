package content

import (
	"context"
	"time"

	"github.com/gomart/backend/internal/application/txn"
	"github.com/gomart/backend/internal/domain/content"
	"github.com/gomart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles storefront content: news articles and promotional
// campaigns. Neither is referenced by other rows, so deletes are
// unconditional.
type Service struct {
	runner *txn.Runner
	clock  shared.Clock
	logger *zap.Logger
}

// NewService creates a new content Service
func NewService(runner *txn.Runner, clock shared.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = shared.SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{runner: runner, clock: clock, logger: logger}
}

// PublishNews creates a news article. A nil publicationDate publishes at
// the current instant.
func (s *Service) PublishNews(ctx context.Context, title, body string, publicationDate *time.Time) (*content.News, error) {
	if publicationDate == nil {
		now := s.clock.Now()
		publicationDate = &now
	}

	var article *content.News
	err := s.runner.Run(ctx, "publish_news", func(ctx context.Context, repos txn.Repositories) error {
		fresh, err := content.NewNews(title, body, publicationDate)
		if err != nil {
			return err
		}
		if err := repos.News().Save(ctx, fresh); err != nil {
			return err
		}
		article = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// GetNews loads a news article by id
func (s *Service) GetNews(ctx context.Context, id int64) (*content.News, error) {
	var article *content.News
	err := s.runner.Run(ctx, "get_news", func(ctx context.Context, repos txn.Repositories) error {
		found, err := repos.News().FindByID(ctx, id)
		if err != nil {
			return err
		}
		article = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// ListNews lists news articles with pagination
func (s *Service) ListNews(ctx context.Context, filter shared.Filter) ([]content.News, error) {
	var articles []content.News
	err := s.runner.Run(ctx, "list_news", func(ctx context.Context, repos txn.Repositories) error {
		found, err := repos.News().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		articles = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// DeleteNews deletes a news article
func (s *Service) DeleteNews(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_news", func(ctx context.Context, repos txn.Repositories) error {
		return repos.News().Delete(ctx, id)
	})
}

// CreatePromotion creates a promotional campaign
func (s *Service) CreatePromotion(ctx context.Context, name, description string, startDate, endDate time.Time) (*content.Promotion, error) {
	var promotion *content.Promotion
	err := s.runner.Run(ctx, "create_promotion", func(ctx context.Context, repos txn.Repositories) error {
		fresh, err := content.NewPromotion(name, description, startDate, endDate)
		if err != nil {
			return err
		}
		if err := repos.Promotions().Save(ctx, fresh); err != nil {
			return err
		}
		promotion = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promotion, nil
}

// ListPromotions lists promotions with pagination
func (s *Service) ListPromotions(ctx context.Context, filter shared.Filter) ([]content.Promotion, error) {
	var promotions []content.Promotion
	err := s.runner.Run(ctx, "list_promotions", func(ctx context.Context, repos txn.Repositories) error {
		found, err := repos.Promotions().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		promotions = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// ListActivePromotions lists the promotions running at the current instant
func (s *Service) ListActivePromotions(ctx context.Context, filter shared.Filter) ([]content.Promotion, error) {
	all, err := s.ListPromotions(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	active := make([]content.Promotion, 0, len(all))
	for idx := range all {
		if all[idx].ActiveAt(now) {
			active = append(active, all[idx])
		}
	}
	return active, nil
}

// DeletePromotion deletes a promotion
func (s *Service) DeletePromotion(ctx context.Context, id int64) error {
	return s.runner.Run(ctx, "delete_promotion", func(ctx context.Context, repos txn.Repositories) error {
		return repos.Promotions().Delete(ctx, id)
	})
}
