package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational/models"
)

func init() {
	Migrations.MustRegister(up_20251018000001, down_20251018000001)
}

// up_20251018000001 creates roles, areas and usuarios.
func up_20251018000001(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*models.Role)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create roles table: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*models.Area)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create areas table: %w", err)
	}

	_, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		ForeignKey(`("id_rol") REFERENCES "roles" ("id_rol") ON DELETE SET NULL`).
		ForeignKey(`("id_area") REFERENCES "areas" ("id_area") ON DELETE SET NULL`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create usuarios table: %w", err)
	}

	// Login looks users up by LOWER(usuario_ad).
	if _, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_usuarios_usuario_ad_lower ON usuarios (LOWER(usuario_ad))`,
	); err != nil {
		return fmt.Errorf("create usuarios lookup index: %w", err)
	}
	return nil
}

func down_20251018000001(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*models.User)(nil), (*models.Area)(nil), (*models.Role)(nil)} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
