package persistence

import (
	"strings"

	"github.com/gomart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and ordering to a query. OrderBy is checked
// against the repository's column allowlist so filter input can never inject
// SQL through the ORDER BY clause.
func applyFilter(query *gorm.DB, filter shared.Filter, sortable map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if orderBy == "" || !sortable[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}
