package cmd

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/intranet-portal/portal-api/internal/core/ports"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational"
	"github.com/intranet-portal/portal-api/internal/infrastructure/directory"
	"github.com/intranet-portal/portal-api/pkg/logger"
)

func openDB(ctx context.Context) (*bun.DB, error) {
	db, err := relational.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func closeDB(db *bun.DB) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}

// newDirectory builds the directory client selected by DIRECTORY_MODE.
func newDirectory() (ports.DirectoryClient, error) {
	switch cfg.Directory.Mode {
	case "static":
		log.Warn().Str("file", cfg.Directory.StaticFile).Msg("using static development directory")
		dir, err := directory.LoadStaticDirectory(cfg.Directory.StaticFile)
		if err != nil {
			return nil, err
		}
		return dir, nil
	default:
		return directory.NewLDAPClient(directory.LDAPConfig{
			URL:                cfg.Directory.URL,
			BaseDN:             cfg.Directory.BaseDN,
			BindUser:           cfg.Directory.BindUser,
			BindPassword:       cfg.Directory.BindPassword,
			UPNSuffix:          cfg.Directory.UPNSuffix,
			Timeout:            cfg.Directory.Timeout,
			InsecureSkipVerify: cfg.Directory.InsecureSkipVerify,
		}, logger.Component("directory")), nil
	}
}
