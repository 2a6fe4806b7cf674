package relational

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/intranet-portal/portal-api/internal/core/ports"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational/models"
)

// DirectoryRepository implements the idempotent writes of the directory sync.
type DirectoryRepository struct {
	db bun.IDB
}

func NewDirectoryRepository(db bun.IDB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

var _ ports.DirectoryRepository = (*DirectoryRepository)(nil)

func (r *DirectoryRepository) UpsertRole(ctx context.Context, name string) (int64, error) {
	_, err := r.db.NewInsert().
		Model(&models.Role{Name: name}).
		On("CONFLICT (nombre_rol) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("upsert role %q: %w", name, err)
	}

	var id int64
	err = r.db.NewSelect().
		Model((*models.Role)(nil)).
		Column("id_rol").
		Where("nombre_rol = ?", name).
		Scan(ctx, &id)
	if err != nil {
		return 0, fmt.Errorf("select role %q: %w", name, err)
	}
	return id, nil
}

func (r *DirectoryRepository) UpsertArea(ctx context.Context, name string) (int64, error) {
	_, err := r.db.NewInsert().
		Model(&models.Area{Name: name}).
		On("CONFLICT (nombre_area) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("upsert area %q: %w", name, err)
	}

	var id int64
	err = r.db.NewSelect().
		Model((*models.Area)(nil)).
		Column("id_area").
		Where("nombre_area = ?", name).
		Scan(ctx, &id)
	if err != nil {
		return 0, fmt.Errorf("select area %q: %w", name, err)
	}
	return id, nil
}

// UpsertUser inserts or updates the account keyed by its directory username.
// Name, email, area and status follow the directory on every run. The role
// is only assigned when the user has none, so administrative assignments
// survive later runs.
func (r *DirectoryRepository) UpsertUser(ctx context.Context, acct ports.DirectoryAccount) error {
	now := time.Now().UTC()
	row := &models.User{
		DisplayName:       acct.DisplayName,
		Email:             sql.NullString{String: acct.Email, Valid: acct.Email != ""},
		DirectoryUsername: acct.Username,
		Active:            acct.Active,
		RoleID:            sql.NullInt64{Int64: acct.RoleID, Valid: acct.RoleID != 0},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if acct.AreaID != nil {
		row.AreaID = sql.NullInt64{Int64: *acct.AreaID, Valid: true}
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (usuario_ad) DO UPDATE").
		Set("nombre = EXCLUDED.nombre").
		Set("correo = EXCLUDED.correo").
		Set("id_area = EXCLUDED.id_area").
		Set("activo = EXCLUDED.activo").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert user %q: %w", acct.Username, err)
	}

	if acct.RoleID == 0 {
		return nil
	}
	_, err = r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("id_rol = ?", acct.RoleID).
		Where("usuario_ad = ?", acct.Username).
		Where("id_rol IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("assign default role to %q: %w", acct.Username, err)
	}
	return nil
}
