package content

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
)

// News represents a news article informing customers about updates
type News struct {
	shared.BaseEntity
	Title           string `gorm:"size:255;not null"`
	Content         string `gorm:"type:text;not null"`
	PublicationDate *time.Time
}

// TableName returns the table name for GORM
func (News) TableName() string {
	return "news"
}

// NewNews creates a new news article
func NewNews(title, body string, publicationDate *time.Time) (*News, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "News title cannot be empty")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "News content cannot be empty")
	}

	return &News{
		BaseEntity:      shared.NewBaseEntity(),
		Title:           title,
		Content:         body,
		PublicationDate: publicationDate,
	}, nil
}
