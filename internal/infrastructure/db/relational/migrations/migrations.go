// Package migrations registers the schema migrations of the relational store.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
