// Command migrate applies pending SQL migrations from the db directory.
// Each file runs in its own transaction together with its row in the
// migrations table, so a failed file leaves no trace.
//
// Usage: go run ./cmd/migrate [--dir db]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lg/nutrichat-api/internal/config"
	"lg/nutrichat-api/internal/logger"
)

var migrationPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

// undefinedTable is the PostgreSQL error code for a missing relation.
const undefinedTable = "42P01"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply pending SQL migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log := logger.Must(logger.New(cfg.LogLevel)).Named("migrate")
			defer func() { _ = log.Sync() }()

			if err := run(cmd.Context(), cfg.DB.URL, dir, log); err != nil {
				log.Error("migration failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "db", "directory containing *.sql migrations")
	return cmd
}

func run(ctx context.Context, dbURL, dir string, log *zap.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close(ctx)

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil || len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", dir)
	}

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		return err
	}
	pending := pendingMigrations(files, applied)
	for _, f := range pending {
		name := filepath.Base(f)
		if err := apply(ctx, conn, f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		log.Info("applied", zap.String("migration", name))
	}

	log.Info("done", zap.Int("applied", len(pending)), zap.Int("skipped", len(files)-len(pending)))
	return nil
}

// appliedMigrations returns the recorded migrations. A missing migrations
// table means nothing has run yet; any other error is returned.
func appliedMigrations(ctx context.Context, conn *pgx.Conn) (map[string]bool, error) {
	applied := make(map[string]bool)
	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	var names []string
	if err == nil {
		names, err = pgx.CollectRows(rows, pgx.RowTo[string])
	}
	if err != nil {
		if isUndefinedTable(err) {
			return applied, nil
		}
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	for _, n := range names {
		applied[n] = true
	}
	return applied, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTable
}

// pendingMigrations returns the files not yet applied, in filename order.
func pendingMigrations(files []string, applied map[string]bool) []string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var pending []string
	for _, f := range sorted {
		if !applied[filepath.Base(f)] {
			pending = append(pending, f)
		}
	}
	return pending
}

func apply(ctx context.Context, conn *pgx.Conn, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	name := filepath.Base(path)

	return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("exec: %w", err)
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO migrations (migration, description) VALUES ($1, $2)",
			name, descriptionFromFilename(name)); err != nil {
			return fmt.Errorf("record: %w", err)
		}
		return nil
	})
}

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".sql")
	name = migrationPrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}
