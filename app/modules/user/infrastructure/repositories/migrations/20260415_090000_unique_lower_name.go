package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Enforcing case-insensitive unique user names...")

		_, err := db.ExecContext(ctx, `
			DROP INDEX IF EXISTS idx_users_lower_name;
			CREATE UNIQUE INDEX IF NOT EXISTS users_lower_name_key ON users (lower(name));
		`)
		if err != nil {
			return fmt.Errorf("failed to create unique name index: %w", err)
		}

		fmt.Println("Unique name index created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Restoring non-unique name index...")

		_, err := db.ExecContext(ctx, `
			DROP INDEX IF EXISTS users_lower_name_key;
			CREATE INDEX IF NOT EXISTS idx_users_lower_name ON users (lower(name));
		`)
		if err != nil {
			return fmt.Errorf("failed to restore name index: %w", err)
		}

		fmt.Println("Name index restored successfully!")
		return nil
	})
}
