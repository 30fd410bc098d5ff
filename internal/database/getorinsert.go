package database

import (
	"errors"
	"fmt"
	"maps"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// GetOrInsert returns selectColumn of the row in table matching every
// matchColumns[i] = matchValues[i], inserting the row first when none exists.
//
// The insert ignores conflicts and the row is read back afterwards, so two
// writers racing on the same unique key both end up with the same id.
// Pass a transaction handle to make the lookup part of a larger unit of work.
func GetOrInsert(tx *gorm.DB, table string, matchColumns []string, matchValues []any, selectColumn string) (uint, error) {
	if len(matchColumns) == 0 || len(matchColumns) != len(matchValues) {
		return 0, fmt.Errorf("get or insert %s: %d columns for %d values", table, len(matchColumns), len(matchValues))
	}
	for _, ident := range append([]string{table, selectColumn}, matchColumns...) {
		if !identifierPattern.MatchString(ident) {
			return 0, fmt.Errorf("get or insert: invalid identifier %q", ident)
		}
	}

	match := make(map[string]any, len(matchColumns))
	for i, column := range matchColumns {
		match[column] = matchValues[i]
	}

	id, err := selectID(tx, table, match, selectColumn)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if err := insertIgnoringConflict(tx, table, match); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}

	id, err = selectID(tx, table, match, selectColumn)
	if err != nil {
		return 0, fmt.Errorf("read back %s: %w", table, err)
	}
	return id, nil
}

func selectID(tx *gorm.DB, table string, match map[string]any, selectColumn string) (uint, error) {
	var ids []uint
	err := tx.Table(table).Where(match).Limit(1).Pluck(selectColumn, &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ids[0], nil
}

// insertIgnoringConflict inserts match unless a row with the same unique key exists.
// MySQL cannot express a schema-less ON CONFLICT DO NOTHING, so a duplicate-key
// error is tolerated there instead; the caller reads the row back either way.
// gorm writes the generated key back into the map it creates from, so match is copied.
func insertIgnoringConflict(tx *gorm.DB, table string, match map[string]any) error {
	row := maps.Clone(match)
	if tx.Dialector.Name() == "mysql" {
		err := TranslateError(tx.Table(table).Create(row).Error)
		if err != nil && !errors.Is(err, ErrConstraintViolation) {
			return err
		}
		return nil
	}
	return TranslateError(tx.Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error)
}
