// Package models holds the bun table models of the portal schema.
package models

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

type Role struct {
	bun.BaseModel `bun:"table:roles,alias:r"`

	ID   int64  `bun:"id_rol,pk,autoincrement"`
	Name string `bun:"nombre_rol,notnull,unique"`
}

type Area struct {
	bun.BaseModel `bun:"table:areas,alias:a"`

	ID   int64  `bun:"id_area,pk,autoincrement"`
	Name string `bun:"nombre_area,notnull,unique"`
}

type User struct {
	bun.BaseModel `bun:"table:usuarios,alias:u"`

	ID                int64          `bun:"id_usuario,pk,autoincrement"`
	DisplayName       string         `bun:"nombre,notnull"`
	Email             sql.NullString `bun:"correo"`
	DirectoryUsername string         `bun:"usuario_ad,notnull,unique"`
	Active            bool           `bun:"activo,notnull"`
	RoleID            sql.NullInt64  `bun:"id_rol"`
	AreaID            sql.NullInt64  `bun:"id_area"`
	BirthDate         bun.NullTime   `bun:"fecha_nacimiento"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time      `bun:"updated_at,notnull,default:current_timestamp"`
}

type Slide struct {
	bun.BaseModel `bun:"table:carousel,alias:c"`

	ID        int64          `bun:"id,pk,autoincrement"`
	Title     string         `bun:"title,notnull"`
	Text      sql.NullString `bun:"text"`
	Image     string         `bun:"image,notnull"`
	CreatedAt time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	IsActive  bool           `bun:"is_active,notnull"`
}
