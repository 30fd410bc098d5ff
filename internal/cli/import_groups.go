package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/database/wordgroups"
	"github.com/mrlokans/wordgroups/internal/entities"
	"github.com/mrlokans/wordgroups/internal/seed"
)

// DefaultImportDatabasePath is used by import-groups when -db is not given.
// The server's in-memory default would discard everything on exit.
const DefaultImportDatabasePath = "./wordgroups.db"

// ImportGroupsCommand bulk-creates word groups from a JSON file.
type ImportGroupsCommand struct {
	FilePath string
	OwnerID  uint
	DryRun   bool
	Verbose  bool

	Database config.Database
	Out      io.Writer
}

// NewImportGroupsCommand starts from the environment's database settings;
// flags override the engine and path.
func NewImportGroupsCommand(dbCfg config.Database) *ImportGroupsCommand {
	if dbCfg.Path == "" || dbCfg.Path == config.DefaultDatabasePath {
		dbCfg.Path = DefaultImportDatabasePath
	}
	return &ImportGroupsCommand{Database: dbCfg, Out: os.Stdout}
}

func (cmd *ImportGroupsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-groups", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a JSON array of word groups (required)")
	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "SQLite database file")
	fs.StringVar(&cmd.Database.Type, "db-type", cmd.Database.Type, "Database engine: sqlite, mysql or postgres (connection settings come from DB_* variables)")
	fs.UintVar(&cmd.OwnerID, "owner", 0, "User id owning the imported groups (0 imports public groups)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate the file without writing to the database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every group")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-groups -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import word groups from a JSON file. The whole file is stored in one\n")
		fmt.Fprintf(os.Stderr, "transaction: one invalid group aborts the import.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-groups -file animals.json -db ./wordgroups.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-groups -file animals.json -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportGroupsCommand) Run(ctx context.Context) error {
	fmt.Fprintln(cmd.Out, "Word Group Import")
	fmt.Fprintln(cmd.Out, "=================")

	if cmd.DryRun {
		fmt.Fprintln(cmd.Out, "DRY RUN MODE - No changes will be made")
		fmt.Fprintln(cmd.Out)
	}

	groups, err := seed.LoadFile(cmd.FilePath)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		fmt.Fprintln(cmd.Out, "No word groups found in file")
		return nil
	}

	fmt.Fprintf(cmd.Out, "Found %d word groups in %s\n", len(groups), cmd.FilePath)

	if cmd.Verbose {
		fmt.Fprintln(cmd.Out, "\n=== Word Groups ===")
		for i, g := range groups {
			fmt.Fprintf(cmd.Out, "%d. %s\n", i+1, describeGroup(g))
		}
	}

	if cmd.DryRun {
		fmt.Fprintln(cmd.Out, "\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	fmt.Fprintf(cmd.Out, "\nSaving to %s database: %s\n", cmd.Database.Type, cmd.Database.Path)

	db, err := database.NewDatabase(cmd.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	var owner *uint
	if cmd.OwnerID != 0 {
		owner = &cmd.OwnerID
	}

	ids, err := wordgroups.NewRepository(db).BulkCreateWordGroups(ctx, groups, owner)
	if err != nil {
		return fmt.Errorf("import failed, nothing was saved: %w", err)
	}

	fmt.Fprintf(cmd.Out, "\nImported %d word groups (ids %d-%d)\n", len(ids), ids[0], ids[len(ids)-1])
	return nil
}

// describeGroup renders a group as "cat (English) / kissa (Finnish) [animals]".
func describeGroup(g entities.WordGroupInput) string {
	parts := make([]string, 0, len(g.Translations))
	for _, t := range g.Translations {
		parts = append(parts, fmt.Sprintf("%s (%s)", t.Word, t.LanguageName))
	}
	s := strings.Join(parts, " / ")
	if len(g.Tags) > 0 {
		s += " [" + strings.Join(g.Tags, ", ") + "]"
	}
	return s
}
