package service

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

// BirthdayService lists active users whose birthday is today.
type BirthdayService struct {
	users ports.UserRepository
	loc   *time.Location
	now   func() time.Time
}

var _ ports.BirthdayService = (*BirthdayService)(nil)

// NewBirthdayService evaluates "today" in the named time zone. "Local" and
// "" use the process time zone.
func NewBirthdayService(users ports.UserRepository, timeZone string) (*BirthdayService, error) {
	loc := time.Local
	if timeZone != "" && timeZone != "Local" {
		l, err := time.LoadLocation(timeZone)
		if err != nil {
			return nil, fmt.Errorf("birthday time zone: %w", err)
		}
		loc = l
	}
	return &BirthdayService{users: users, loc: loc, now: time.Now}, nil
}

func (s *BirthdayService) Today(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListActiveWithBirthDate(ctx)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}

	today := s.now().In(s.loc)
	matches := make([]domain.User, 0)
	for _, u := range users {
		if u.Active && u.BirthdayOn(today.Month(), today.Day()) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}
