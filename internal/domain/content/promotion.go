package content

import (
	"time"

	"github.com/gomart/backend/internal/domain/shared"
)

// Promotion represents a promotional campaign
type Promotion struct {
	shared.BaseEntity
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Promotion) TableName() string {
	return "promotion"
}

// NewPromotion creates a new promotional campaign
func NewPromotion(name, description string, startDate, endDate time.Time) (*Promotion, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Promotion name cannot be empty")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainRange("promotion", "end_date", "End date cannot precede start date")
	}

	return &Promotion{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

// ActiveAt reports whether the promotion is running at the given instant
func (p *Promotion) ActiveAt(at time.Time) bool {
	return !at.Before(p.StartDate) && !at.After(p.EndDate)
}
