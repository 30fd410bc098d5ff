package wordgroups

import (
	"context"
	"fmt"
	"log"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/entities"
)

// wordGroupRow is one (group, word) row of the aggregate query.
// Synonyms and Tags hold ListSeparator-joined values and may repeat entries
// because both are outer-joined on the same row.
type wordGroupRow struct {
	GroupID      uint
	OwnerID      *uint
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
	WordID       uint
	LanguageName string
	Word         string
	Synonyms     *string
	Tags         *string
}

// groupQuery builds the aggregate select. where is appended verbatim and
// must use placeholders for every value.
func (r *Repository) groupQuery(where string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `SELECT wg.id AS group_id, wg.owner_id, wg.created_at, wg.updated_at,
	w.id AS word_id, l.name AS language_name, w.text AS word,
	%s AS synonyms, %s AS tags
FROM word_groups wg
JOIN words w ON w.group_id = wg.id
JOIN languages l ON l.id = w.language_id
LEFT JOIN synonyms s ON s.word_id = w.id
LEFT JOIN word_group_tags wgt ON wgt.group_id = wg.id
LEFT JOIN tags t ON t.id = wgt.tag_id
`, r.db.StringAgg("s.text"), r.db.StringAgg("t.name"))
	if where != "" {
		b.WriteString("WHERE " + where + "\n")
	}
	// The fold relies on rows of one group being adjacent
	b.WriteString(`GROUP BY wg.id, wg.owner_id, wg.created_at, wg.updated_at, w.id, l.name, w.text
ORDER BY wg.id, l.name`)
	return b.String()
}

func (r *Repository) queryGroups(ctx context.Context, where string, args ...any) ([]entities.WordGroupView, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var rows []wordGroupRow
	if err := r.db.DB.WithContext(ctx).Raw(r.groupQuery(where), args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query word groups: %w", err)
	}
	return foldRows(rows), nil
}

// GetWordGroupByID returns the group with its translations, or nil when it does not exist.
func (r *Repository) GetWordGroupByID(ctx context.Context, id uint) (*entities.WordGroupView, error) {
	groups, err := r.queryGroups(ctx, "wg.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		log.Printf("No word group found with ID %d", id)
		return nil, nil
	}
	return &groups[0], nil
}

// GetMultipleWordGroups returns groups with offset < id <= offset+limit in
// ascending id order, or every group when opts.GetAll is set. Ids are not
// dense after deletes and updates, so a window may hold fewer than limit groups.
func (r *Repository) GetMultipleWordGroups(ctx context.Context, opts entities.ListOptions) ([]entities.WordGroupView, error) {
	if opts.GetAll {
		return r.queryGroups(ctx, "")
	}
	if opts.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	upper := math.MaxInt
	if opts.Offset <= math.MaxInt-opts.Limit {
		upper = opts.Offset + opts.Limit
	}
	return r.queryGroups(ctx, "wg.id > ? AND wg.id <= ?", opts.Offset, upper)
}

// GetWordGroupsByTag returns every group linked to the named tag.
func (r *Repository) GetWordGroupsByTag(ctx context.Context, tagName string) ([]entities.WordGroupView, error) {
	return r.queryGroups(ctx, `wg.id IN (
	SELECT tagged.group_id FROM word_group_tags tagged
	JOIN tags tt ON tt.id = tagged.tag_id
	WHERE tt.name = ?)`, tagName)
}

// foldRows collapses consecutive rows sharing a group id into one view.
// rows must be ordered by group id.
func foldRows(rows []wordGroupRow) []entities.WordGroupView {
	groups := make([]entities.WordGroupView, 0)
	for _, row := range rows {
		if len(groups) == 0 || groups[len(groups)-1].ID != row.GroupID {
			groups = append(groups, entities.WordGroupView{
				ID:           row.GroupID,
				OwnerID:      row.OwnerID,
				Translations: []entities.TranslationView{},
				Tags:         []string{},
				CreatedAt:    row.CreatedAt,
				UpdatedAt:    row.UpdatedAt,
			})
		}
		group := &groups[len(groups)-1]
		group.Translations = append(group.Translations, entities.TranslationView{
			LanguageName: row.LanguageName,
			Word:         row.Word,
			Synonyms:     parseList(row.Synonyms),
		})
		group.Tags = mergeLists(group.Tags, parseList(row.Tags))
	}
	return groups
}

// parseList splits an aggregated column into sorted unique values.
// NULL and empty input yield an empty, non-nil slice.
func parseList(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}
	values := strings.Split(*raw, database.ListSeparator)
	slices.Sort(values)
	return slices.Compact(values)
}

func mergeLists(a, b []string) []string {
	merged := append(a, b...)
	slices.Sort(merged)
	return slices.Compact(merged)
}
