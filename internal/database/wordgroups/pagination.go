package wordgroups

import (
	"context"
	"fmt"

	"github.com/mrlokans/wordgroups/internal/entities"
)

// paginatedTables lists the tables Pagination may count. The name is
// interpolated into SQL, so it must come from this set.
var paginatedTables = map[string]bool{
	"word_groups": true,
	"words":       true,
	"tags":        true,
	"languages":   true,
	"users":       true,
}

// Pagination counts distinct ids in table and reports how many full pages of
// limit rows they fill. Pages rounds down: 25 rows at limit 10 is 2 pages.
func (r *Repository) Pagination(ctx context.Context, table string, limit int) (entities.PaginationInfo, error) {
	if !paginatedTables[table] {
		return entities.PaginationInfo{}, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	if limit <= 0 {
		return entities.PaginationInfo{}, ErrInvalidLimit
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.db.DB.WithContext(ctx).Table(table).Distinct("id").Count(&total).Error; err != nil {
		return entities.PaginationInfo{}, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return entities.PaginationInfo{
		Total: total,
		Pages: total / int64(limit),
	}, nil
}
