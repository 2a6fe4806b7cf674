package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational/models"
)

func init() {
	Migrations.MustRegister(up_20251018000002, down_20251018000002)
}

// up_20251018000002 creates the carousel table.
func up_20251018000002(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*models.Slide)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create carousel table: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_carousel_active_created ON carousel (created_at DESC) WHERE is_active`,
	); err != nil {
		return fmt.Errorf("create carousel index: %w", err)
	}
	return nil
}

func down_20251018000002(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewDropTable().Model((*models.Slide)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("drop carousel table: %w", err)
	}
	return nil
}
