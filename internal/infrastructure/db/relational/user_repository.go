package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db bun.IDB
}

func NewUserRepository(db bun.IDB) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// userRow is a usuarios row joined with its role and area names.
type userRow struct {
	ID                int64          `bun:"id_usuario"`
	DisplayName       string         `bun:"nombre"`
	Email             sql.NullString `bun:"correo"`
	DirectoryUsername string         `bun:"usuario_ad"`
	Active            bool           `bun:"activo"`
	BirthDate         bun.NullTime   `bun:"fecha_nacimiento"`
	Role              sql.NullString `bun:"rol"`
	Area              sql.NullString `bun:"area"`
}

func (r userRow) toDomain() domain.User {
	u := domain.User{
		ID:                r.ID,
		DisplayName:       r.DisplayName,
		Email:             r.Email.String,
		DirectoryUsername: r.DirectoryUsername,
		Active:            r.Active,
		Role:              r.Role.String,
		Area:              r.Area.String,
	}
	if !r.BirthDate.IsZero() {
		bd := r.BirthDate.Time
		u.BirthDate = &bd
	}
	return u
}

func (r *UserRepository) selectUsers() *bun.SelectQuery {
	return r.db.NewSelect().
		TableExpr("usuarios AS u").
		ColumnExpr("u.id_usuario, u.nombre, u.correo, u.usuario_ad, u.activo, u.fecha_nacimiento").
		ColumnExpr("r.nombre_rol AS rol").
		ColumnExpr("a.nombre_area AS area").
		Join("LEFT JOIN roles AS r ON r.id_rol = u.id_rol").
		Join("LEFT JOIN areas AS a ON a.id_area = u.id_area")
}

func (r *UserRepository) FindByDirectoryUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	err := r.selectUsers().
		Where("LOWER(u.usuario_ad) = LOWER(?)", username).
		Limit(1).
		Scan(ctx, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by directory username: %w", err)
	}
	u := row.toDomain()
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	err := r.selectUsers().Where("u.id_usuario = ?", id).Scan(ctx, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	u := row.toDomain()
	return &u, nil
}

// ListActiveWithBirthDate returns active users that have a birth date on
// record. Day and month matching happens in the caller so the query stays
// portable across dialects.
func (r *UserRepository) ListActiveWithBirthDate(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	err := r.selectUsers().
		Where("u.activo = ?", true).
		Where("u.fecha_nacimiento IS NOT NULL").
		OrderExpr("u.nombre ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("list users with birth date: %w", err)
	}
	return toUsers(rows), nil
}

func (r *UserRepository) List(ctx context.Context, limit int) ([]domain.User, error) {
	var rows []userRow
	err := r.selectUsers().
		OrderExpr("u.id_usuario ASC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return toUsers(rows), nil
}

func toUsers(rows []userRow) []domain.User {
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users
}
