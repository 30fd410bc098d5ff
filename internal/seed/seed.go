// Package seed loads word group payloads from JSON: the embedded starter set
// used to populate an empty database and files given to the import command.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin/binding"

	"github.com/mrlokans/wordgroups/internal/entities"
)

//go:embed starter_groups.json
var starterGroups []byte

// Store is the subset of the word groups repository seeding needs.
type Store interface {
	BulkCreateWordGroups(ctx context.Context, inputs []entities.WordGroupInput, ownerID *uint) ([]uint, error)
	Pagination(ctx context.Context, table string, limit int) (entities.PaginationInfo, error)
}

// StarterGroups returns the embedded starter word groups.
func StarterGroups() ([]entities.WordGroupInput, error) {
	var groups []entities.WordGroupInput
	if err := json.Unmarshal(starterGroups, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse starter groups: %w", err)
	}
	return groups, nil
}

// SeedStarterContent creates the starter groups as public groups when the
// database holds no word groups yet. Returns the number of groups created.
func SeedStarterContent(ctx context.Context, store Store) (int, error) {
	info, err := store.Pagination(ctx, "word_groups", 1)
	if err != nil {
		return 0, fmt.Errorf("failed to count word groups: %w", err)
	}
	if info.Total > 0 {
		log.Printf("Skipping starter content: %d word groups already present", info.Total)
		return 0, nil
	}

	groups, err := StarterGroups()
	if err != nil {
		return 0, err
	}

	ids, err := store.BulkCreateWordGroups(ctx, groups, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to seed starter content: %w", err)
	}

	log.Printf("Seeded %d starter word groups", len(ids))
	return len(ids), nil
}

// Decode reads a JSON array of word groups and validates each one.
func Decode(r io.Reader) ([]entities.WordGroupInput, error) {
	var groups []entities.WordGroupInput
	if err := json.NewDecoder(r).Decode(&groups); err != nil {
		return nil, fmt.Errorf("failed to decode word groups: %w", err)
	}
	for i, g := range groups {
		if err := Validate(g); err != nil {
			return nil, fmt.Errorf("word group %d: %w", i, err)
		}
	}
	return groups, nil
}

// LoadFile decodes the word groups stored at path.
func LoadFile(path string) ([]entities.WordGroupInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate applies the binding rules of entities.WordGroupInput to payloads
// that arrive from files or the task queue instead of an HTTP request.
func Validate(g entities.WordGroupInput) error {
	if err := binding.Validator.ValidateStruct(&g); err != nil {
		return fmt.Errorf("invalid word group: %w", err)
	}
	return nil
}
