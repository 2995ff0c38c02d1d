package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema/*.sql
var schemas embed.FS

// Migrate creates the venues, artists and shows tables if they do not
// exist yet.  The schema file is picked from the driver name so the
// same binary can run against MySQL or SQLite.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	name := "schema/" + db.DriverName() + ".sql"
	raw, err := schemas.ReadFile(name)
	if err != nil {
		return fmt.Errorf("no schema for driver %q: %w", db.DriverName(), err)
	}
	// The MySQL driver rejects multi-statement Exec unless multiStatements
	// is set on the DSN, so statements are applied one by one.
	for _, stmt := range splitStatements(string(raw)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func splitStatements(schema string) []string {
	var out []string
	for _, part := range strings.Split(schema, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
