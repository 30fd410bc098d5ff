package database

import "fmt"

// ListSeparator joins aggregated values. The ASCII unit separator cannot
// appear in user-entered words, synonyms or tag names.
const ListSeparator = "\x1f"

// StringAgg returns the dialect's string aggregate over column joined by ListSeparator.
// Ordering and de-duplication are left to the caller.
func (d *Database) StringAgg(column string) string {
	return StringAggFor(d.Dialect(), column)
}

// StringAggFor is StringAgg for an explicit dialector name.
func StringAggFor(dialect, column string) string {
	switch dialect {
	case "postgres":
		return fmt.Sprintf("string_agg(%s, '%s')", column, ListSeparator)
	case "mysql":
		return fmt.Sprintf("GROUP_CONCAT(%s SEPARATOR '%s')", column, ListSeparator)
	default:
		return fmt.Sprintf("GROUP_CONCAT(%s, '%s')", column, ListSeparator)
	}
}
