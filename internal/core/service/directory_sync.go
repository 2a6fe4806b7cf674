package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
	"github.com/intranet-portal/portal-api/internal/infrastructure/queue"
)

// DirectorySyncConfig tunes a sync run.
type DirectorySyncConfig struct {
	Filter      string
	DefaultRole string
	Workers     int
}

// DirectorySyncService copies person accounts from the directory into the
// relational store with idempotent upserts.
type DirectorySyncService struct {
	directory ports.DirectoryClient
	repo      ports.DirectoryRepository
	cfg       DirectorySyncConfig
	log       zerolog.Logger
}

var _ ports.DirectorySync = (*DirectorySyncService)(nil)

func NewDirectorySyncService(directory ports.DirectoryClient, repo ports.DirectoryRepository, cfg DirectorySyncConfig, log zerolog.Logger) *DirectorySyncService {
	return &DirectorySyncService{directory: directory, repo: repo, cfg: cfg, log: log}
}

// Run performs one synchronization pass. A failed directory search aborts
// the run; individual account failures are counted and logged.
func (s *DirectorySyncService) Run(ctx context.Context) (domain.SyncReport, error) {
	start := time.Now()

	entries, err := s.directory.FindUsers(ctx, s.cfg.Filter)
	if err != nil {
		return domain.SyncReport{}, domain.DirectoryFailure(err)
	}
	report := domain.SyncReport{Found: len(entries)}
	s.log.Info().Int("entries", len(entries)).Msg("directory search complete")

	roleID, err := s.repo.UpsertRole(ctx, s.cfg.DefaultRole)
	if err != nil {
		return report, domain.StoreFailure(err)
	}

	d := queue.NewDispatcher(s.cfg.Workers, func(ctx context.Context, e domain.DirectoryEntry) error {
		return s.syncEntry(ctx, e, roleID)
	}, s.log)
	d.Start(ctx)

	var enqueueErr error
	for _, e := range entries {
		if strings.TrimSpace(e.AccountName) == "" {
			report.Skipped++
			continue
		}
		if enqueueErr = d.Enqueue(ctx, e); enqueueErr != nil {
			break
		}
	}
	report.Processed, report.Failed = d.Wait()

	s.log.Info().
		Int("processed", report.Processed).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("directory sync finished")

	if enqueueErr != nil {
		return report, fmt.Errorf("directory sync interrupted: %w", enqueueErr)
	}
	return report, nil
}

func (s *DirectorySyncService) syncEntry(ctx context.Context, e domain.DirectoryEntry, roleID int64) error {
	acct := ports.DirectoryAccount{
		Username:    strings.TrimSpace(e.AccountName),
		DisplayName: strings.TrimSpace(e.DisplayName),
		Email:       strings.TrimSpace(e.Email),
		Active:      !e.Disabled,
		RoleID:      roleID,
	}
	if acct.DisplayName == "" {
		acct.DisplayName = acct.Username
	}

	if dept := strings.TrimSpace(e.Department); dept != "" {
		areaID, err := s.repo.UpsertArea(ctx, dept)
		if err != nil {
			return err
		}
		acct.AreaID = &areaID
	}
	return s.repo.UpsertUser(ctx, acct)
}
