package content

import (
	"context"

	"github.com/gomart/backend/internal/domain/shared"
)

// NewsRepository persists news articles
type NewsRepository interface {
	FindByID(ctx context.Context, id int64) (*News, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]News, error)
	Save(ctx context.Context, news *News) error
	Delete(ctx context.Context, id int64) error
}

// PromotionRepository persists promotional campaigns
type PromotionRepository interface {
	FindByID(ctx context.Context, id int64) (*Promotion, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Promotion, error)
	Save(ctx context.Context, promotion *Promotion) error
	Delete(ctx context.Context, id int64) error
}
