package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/intranet-portal/portal-api/internal/core/domain"
)

func birthDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBirthdayService_Today(t *testing.T) {
	users := newStubUserRepo(
		domain.User{ID: 1, DisplayName: "Ana", Active: true, BirthDate: birthDate(1990, time.October, 18)},
		domain.User{ID: 2, DisplayName: "Luis", Active: true, BirthDate: birthDate(1985, time.October, 19)},
		domain.User{ID: 3, DisplayName: "Marta", Active: false, BirthDate: birthDate(1992, time.October, 18)},
		domain.User{ID: 4, DisplayName: "Pedro", Active: true},
	)
	svc, err := NewBirthdayService(users, "America/Mexico_City")
	if err != nil {
		t.Fatalf("NewBirthdayService returned error: %v", err)
	}

	// 03:00 UTC on the 19th is still the 18th in Mexico City.
	svc.now = fixedClock(time.Date(2026, time.October, 19, 3, 0, 0, 0, time.UTC))
	got, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if len(got) != 1 || got[0].DisplayName != "Ana" {
		t.Fatalf("unexpected birthdays: %+v", got)
	}
}

func TestBirthdayService_NoMatches(t *testing.T) {
	svc, err := NewBirthdayService(newStubUserRepo(), "")
	if err != nil {
		t.Fatalf("NewBirthdayService returned error: %v", err)
	}
	got, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBirthdayService_Errors(t *testing.T) {
	if _, err := NewBirthdayService(newStubUserRepo(), "Mars/Olympus"); err == nil {
		t.Fatalf("expected unknown time zone error")
	}

	repo := newStubUserRepo()
	repo.err = errBoom
	svc, _ := NewBirthdayService(repo, "UTC")
	if _, err := svc.Today(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store failure, got %v", err)
	}
}
