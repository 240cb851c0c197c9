package postgres

import (
	"context"
	"fmt"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates or updates all nordlager tables. Statements are
// idempotent, so reapplying on startup is safe.
func ApplySchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
