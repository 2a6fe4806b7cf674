package relational

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational/models"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = Migrate(ctx, db)
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *bun.DB, u models.User) models.User {
	t.Helper()
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := db.NewInsert().Model(&u).Exec(context.Background())
	require.NoError(t, err)
	return u
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	group, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Zero(t, group.ID)
}

func TestUserRepository_FindByDirectoryUsername(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	dir := NewDirectoryRepository(db)

	roleID, err := dir.UpsertRole(ctx, "Administrador")
	require.NoError(t, err)
	areaID, err := dir.UpsertArea(ctx, "Sistemas")
	require.NoError(t, err)

	seedUser(t, db, models.User{
		DisplayName:       "Juana Doe",
		DirectoryUsername: "JDoe",
		Email:             sql.NullString{String: "jdoe@example.com", Valid: true},
		Active:            true,
		RoleID:            sql.NullInt64{Int64: roleID, Valid: true},
		AreaID:            sql.NullInt64{Int64: areaID, Valid: true},
	})

	repo := NewUserRepository(db)
	u, err := repo.FindByDirectoryUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "Juana Doe", u.DisplayName)
	assert.Equal(t, "JDoe", u.DirectoryUsername)
	assert.Equal(t, "jdoe@example.com", u.Email)
	assert.Equal(t, "Administrador", u.Role)
	assert.Equal(t, "Sistemas", u.Area)
	assert.True(t, u.Active)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.DirectoryUsername, byID.DirectoryUsername)
}

func TestUserRepository_MissingRoleAndAreaAreEmpty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedUser(t, db, models.User{DisplayName: "Sin Rol", DirectoryUsername: "sinrol", Active: false})

	u, err := NewUserRepository(db).FindByDirectoryUsername(ctx, "SINROL")
	require.NoError(t, err)
	assert.Empty(t, u.Role)
	assert.Empty(t, u.Area)
	assert.False(t, u.Active)
}

func TestUserRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.FindByDirectoryUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ListActiveWithBirthDate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	bd := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)

	seedUser(t, db, models.User{DisplayName: "Ana", DirectoryUsername: "ana", Active: true, BirthDate: bun.NullTime{Time: bd}})
	seedUser(t, db, models.User{DisplayName: "Beto", DirectoryUsername: "beto", Active: false, BirthDate: bun.NullTime{Time: bd}})
	seedUser(t, db, models.User{DisplayName: "Caro", DirectoryUsername: "caro", Active: true})

	users, err := NewUserRepository(db).ListActiveWithBirthDate(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].DisplayName)
	require.NotNil(t, users[0].BirthDate)
	assert.True(t, users[0].BirthdayOn(time.March, 14))
}

func TestUserRepository_ListHonoursLimit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	for _, name := range []string{"a", "b", "c"} {
		seedUser(t, db, models.User{DisplayName: name, DirectoryUsername: name, Active: true})
	}

	users, err := NewUserRepository(db).List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestCarouselRepository_ListActiveNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewCarouselRepository(newTestDB(t))
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	slides := []*domain.Slide{
		{Title: "old", Image: "/uploads/a.png", CreatedAt: base, Active: true},
		{Title: "hidden", Image: "/uploads/b.png", CreatedAt: base.Add(time.Hour), Active: false},
		{Title: "new", Text: "hola", Image: "/uploads/c.png", CreatedAt: base.Add(2 * time.Hour), Active: true},
	}
	for _, s := range slides {
		require.NoError(t, repo.Create(ctx, s))
		assert.NotZero(t, s.ID)
	}

	got, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Title)
	assert.Equal(t, "hola", got[0].Text)
	assert.Equal(t, "old", got[1].Title)
}

func TestDirectoryRepository_UpsertsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	dir := NewDirectoryRepository(db)

	first, err := dir.UpsertArea(ctx, "Finanzas")
	require.NoError(t, err)
	second, err := dir.UpsertArea(ctx, "Finanzas")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	roleA, err := dir.UpsertRole(ctx, "Empleado")
	require.NoError(t, err)
	roleB, err := dir.UpsertRole(ctx, "Empleado")
	require.NoError(t, err)
	assert.Equal(t, roleA, roleB)
}

func TestDirectoryRepository_UpsertUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	dir := NewDirectoryRepository(db)
	users := NewUserRepository(db)

	empleado, err := dir.UpsertRole(ctx, "Empleado")
	require.NoError(t, err)
	finanzas, err := dir.UpsertArea(ctx, "Finanzas")
	require.NoError(t, err)

	acct := ports.DirectoryAccount{
		Username:    "mlopez",
		DisplayName: "María López",
		Email:       "mlopez@example.com",
		Active:      true,
		RoleID:      empleado,
		AreaID:      &finanzas,
	}
	require.NoError(t, dir.UpsertUser(ctx, acct))
	require.NoError(t, dir.UpsertUser(ctx, acct))

	u, err := users.FindByDirectoryUsername(ctx, "mlopez")
	require.NoError(t, err)
	assert.Equal(t, "Empleado", u.Role)
	assert.Equal(t, "Finanzas", u.Area)

	all, err := users.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// An administrative role assignment survives the next sync.
	admin, err := dir.UpsertRole(ctx, "Administrador")
	require.NoError(t, err)
	_, err = db.NewUpdate().Model((*models.User)(nil)).
		Set("id_rol = ?", admin).
		Where("usuario_ad = ?", "mlopez").
		Exec(ctx)
	require.NoError(t, err)

	acct.DisplayName = "María López Ruiz"
	acct.Active = false
	acct.AreaID = nil
	require.NoError(t, dir.UpsertUser(ctx, acct))

	u, err = users.FindByDirectoryUsername(ctx, "mlopez")
	require.NoError(t, err)
	assert.Equal(t, "María López Ruiz", u.DisplayName)
	assert.Equal(t, "Administrador", u.Role)
	assert.Empty(t, u.Area)
	assert.False(t, u.Active)
}
