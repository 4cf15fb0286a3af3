package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pressly/goose/v3"
)

var sqlFileRe = regexp.MustCompile(`^\d{14}_[a-z0-9_]+\.sql$`)

// ValidateDir checks the house rules goose itself does not enforce:
// timestamp versions with snake case names, and both an Up and a Down
// section in every file.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("collect migrations in %q: %w", dir, err)
	}
	if len(migrations) == 0 {
		return fmt.Errorf("no migrations found in %q", dir)
	}

	seen := make(map[int64]string, len(migrations))
	for _, m := range migrations {
		name := filepath.Base(m.Source)
		if !sqlFileRe.MatchString(name) {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_snake_name.sql)", name)
		}
		if prev, ok := seen[m.Version]; ok {
			return fmt.Errorf("duplicate migration version %d in %q and %q", m.Version, prev, name)
		}
		seen[m.Version] = name
		body, err := os.ReadFile(m.Source)
		if err != nil {
			return fmt.Errorf("read migration %q: %w", name, err)
		}
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(string(body), marker) {
				return fmt.Errorf("migration %q missing %q", name, marker)
			}
		}
	}
	return nil
}
