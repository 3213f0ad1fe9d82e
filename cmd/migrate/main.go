// CLI tool to apply pending SQL migrations from db/ in filename order.
// Each file and its migrations row are committed in one transaction.
// Usage: go run ./cmd/migrate [-dir db]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"lg/fittrack-go-api/internal/config"
)

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

func main() {
	dir := flag.String("dir", "db", "directory holding *.sql migrations")
	flag.Parse()

	cfg := config.Load()
	if cfg.DBURL == "" {
		fmt.Fprintln(os.Stderr, "DB_URL is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil || len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No migration files found in %s\n", *dir)
		os.Exit(1)
	}
	sort.Strings(files)

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading migrations table: %v\n", err)
		os.Exit(1)
	}

	ran := 0
	for _, f := range pending(files, applied) {
		if err := apply(ctx, conn, f); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  applied: %s\n", filepath.Base(f))
		ran++
	}

	if ran == 0 {
		fmt.Println("No pending migrations.")
	} else {
		fmt.Printf("\n%d migration(s) applied.\n", ran)
	}
}

// appliedMigrations returns recorded filenames. A missing table means a fresh
// database.
func appliedMigrations(ctx context.Context, conn *pgx.Conn) (map[string]bool, error) {
	var exists bool
	if err := conn.QueryRow(ctx, "SELECT to_regclass('migrations') IS NOT NULL").Scan(&exists); err != nil {
		return nil, err
	}
	applied := map[string]bool{}
	if !exists {
		return applied, nil
	}

	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		applied[n] = true
	}
	return applied, nil
}

// pending filters files already recorded in applied, keeping order.
func pending(files []string, applied map[string]bool) []string {
	var out []string
	for _, f := range files {
		if applied[filepath.Base(f)] {
			fmt.Printf("  skip: %s\n", filepath.Base(f))
			continue
		}
		out = append(out, f)
	}
	return out
}

func apply(ctx context.Context, conn *pgx.Conn, path string) error {
	filename := filepath.Base(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", filename, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("run %s: %w", filename, err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO migrations (migration, description) VALUES ($1, $2)",
		filename, descriptionFromFilename(filename)); err != nil {
		return fmt.Errorf("record %s: %w", filename, err)
	}
	return tx.Commit(ctx)
}

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := datePrefix.ReplaceAllString(strings.TrimSuffix(filename, ".sql"), "")
	return strings.ReplaceAll(name, "-", " ")
}
