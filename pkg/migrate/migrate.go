package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

// DefaultDir holds the Postgres schema migrations, relative to the repo root.
const DefaultDir = "pkg/migrate/migrations"

// Commands accepted by Run.
const (
	CmdUp      = "up"
	CmdDown    = "down"
	CmdStatus  = "status"
	CmdVersion = "version"
)

// Run applies a goose command against Postgres. CmdVersion moves the schema
// up or down to target (a YYYYMMDDHHMMSS version); other commands ignore it.
func Run(ctx context.Context, db *sql.DB, dir, command, target string) error {
	var version int64
	switch command {
	case CmdUp, CmdDown, CmdStatus:
	case CmdVersion:
		v, err := strconv.ParseInt(target, 10, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid target version %q (expected YYYYMMDDHHMMSS)", target)
		}
		version = v
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if command != CmdVersion {
		if err := goose.RunContext(ctx, command, db, dir); err != nil {
			return fmt.Errorf("goose %s: %w", command, err)
		}
		return nil
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	switch {
	case current < version:
		err = goose.UpToContext(ctx, db, dir, version)
	case current > version:
		err = goose.DownToContext(ctx, db, dir, version)
	}
	if err != nil {
		return fmt.Errorf("goose migrate %d -> %d: %w", current, version, err)
	}
	return nil
}
