package migrate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pressly/goose/v3"
)

var nameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// Create writes a timestamped goose SQL migration into dir. The name is
// lowered to snake case so the file passes ValidateDir.
func Create(dir, name string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	safe := strings.Trim(nameSanitizer.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if safe == "" {
		return fmt.Errorf("migration name %q is empty after sanitizing", name)
	}
	goose.SetSequential(false)
	if err := goose.Create(nil, dir, safe, "sql"); err != nil {
		return fmt.Errorf("goose create %s: %w", safe, err)
	}
	return nil
}
