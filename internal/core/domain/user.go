package domain

import (
	"strings"
	"time"
)

const (
	DefaultRole = "empleado"
	DefaultArea = "general"
)

// User is a portal account as stored in the relational store, joined with
// its role and area names. Role and Area are empty when unassigned.
type User struct {
	ID                int64
	DisplayName       string
	DirectoryUsername string
	Email             string
	Active            bool
	Role              string
	Area              string
	BirthDate         *time.Time
}

// Normalize lower-cases role and area and fills in the defaults for
// unassigned ones. Every consumer of a resolved user sees normalized values.
func (u *User) Normalize() {
	u.Role = normalizeName(u.Role, DefaultRole)
	u.Area = normalizeName(u.Area, DefaultArea)
}

func normalizeName(v, fallback string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return fallback
	}
	return v
}

// NormalizeIdentity reduces a raw login identity to the bare account name
// used as the store lookup key: "DOMAIN\user" and "user@domain" both become
// "user".
func NormalizeIdentity(raw string) string {
	id := strings.TrimSpace(raw)
	if _, after, ok := strings.Cut(id, `\`); ok {
		id = after
	}
	if before, _, ok := strings.Cut(id, "@"); ok {
		id = before
	}
	return strings.TrimSpace(id)
}

// BirthdayOn reports whether the user's birth date falls on the given month
// and day.
func (u *User) BirthdayOn(month time.Month, day int) bool {
	if u.BirthDate == nil {
		return false
	}
	return u.BirthDate.Month() == month && u.BirthDate.Day() == day
}
