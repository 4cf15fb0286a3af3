package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpReadsPgxError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23P01", ConstraintName: "price_tiers_no_overlap", TableName: "price_tiers"}
	err := fmt.Errorf("insert tier: %w", pgErr)

	dump := Dump(err)
	if dump.PGCode != "23P01" || dump.PGConstraint != "price_tiers_no_overlap" || dump.PGTable != "price_tiers" {
		t.Fatalf("unexpected dump %+v", dump)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %v", dump.Chain)
	}
}

func TestDumpReadsPqError(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "cart_items_user_product_key"}
	dump := Dump(err)
	if dump.PGCode != "23505" || dump.PGConstraint != "cart_items_user_product_key" {
		t.Fatalf("unexpected dump %+v", dump)
	}
}

func TestFromDBClassifies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "exclusion", err: &pgconn.PgError{Code: "23P01"}, want: CodeTierOverlap},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: CodeConflict},
		{name: "fk", err: &pq.Error{Code: "23503"}, want: CodeNotFound},
		{name: "check", err: &pgconn.PgError{Code: "23514"}, want: CodeValidation},
		{name: "other", err: stdErrors.New("timeout"), want: CodeDependency},
		{name: "typed passthrough", err: New(CodeForbidden, "nope"), want: CodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDB(tt.err, "save tier")
			if got.Code() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.Code())
			}
		})
	}

	if FromDB(nil, "noop") != nil {
		t.Fatal("expected nil for nil error")
	}
}
