package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/mocks"
)

const syncFilter = "(&(objectClass=user)(objectCategory=person))"

func TestDirectorySync_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockDirectoryClient(ctrl)
	dir.EXPECT().FindUsers(gomock.Any(), syncFilter).Return([]domain.DirectoryEntry{
		{AccountName: "jdoe", DisplayName: "Jane Doe", Email: "jdoe@corp.local", Department: "Sistemas"},
		{AccountName: "lperez", Department: "Finanzas", Disabled: true},
		{AccountName: "  "},
		{AccountName: "mgomez", DisplayName: "Marta Gómez"},
	}, nil)

	repo := newStubDirectoryRepo()
	svc := NewDirectorySyncService(dir, repo, DirectorySyncConfig{Filter: syncFilter, DefaultRole: "Empleado", Workers: 2}, zerolog.Nop())

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := domain.SyncReport{Found: 4, Processed: 3, Skipped: 1}
	if report != want {
		t.Fatalf("report = %+v, want %+v", report, want)
	}

	roleID := repo.roles["Empleado"]
	jdoe := repo.accounts["jdoe"]
	if !jdoe.Active || jdoe.RoleID != roleID || jdoe.AreaID == nil || *jdoe.AreaID != repo.areas["Sistemas"] {
		t.Fatalf("unexpected jdoe account: %+v", jdoe)
	}
	if lperez := repo.accounts["lperez"]; lperez.Active || lperez.DisplayName != "lperez" {
		t.Fatalf("unexpected lperez account: %+v", lperez)
	}
	if mgomez := repo.accounts["mgomez"]; mgomez.AreaID != nil {
		t.Fatalf("account without department got an area: %+v", mgomez)
	}
}

func TestDirectorySync_RunCountsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockDirectoryClient(ctrl)
	dir.EXPECT().FindUsers(gomock.Any(), gomock.Any()).Return([]domain.DirectoryEntry{
		{AccountName: "ok"},
		{AccountName: "broken"},
	}, nil)

	repo := newStubDirectoryRepo()
	repo.failUser = "broken"
	svc := NewDirectorySyncService(dir, repo, DirectorySyncConfig{DefaultRole: "Empleado", Workers: 1}, zerolog.Nop())

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Processed != 1 || report.Failed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestDirectorySync_RunDirectoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockDirectoryClient(ctrl)
	dir.EXPECT().FindUsers(gomock.Any(), gomock.Any()).Return(nil, errBoom)

	svc := NewDirectorySyncService(dir, newStubDirectoryRepo(), DirectorySyncConfig{DefaultRole: "Empleado", Workers: 1}, zerolog.Nop())
	if _, err := svc.Run(context.Background()); !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("expected directory failure, got %v", err)
	}
}
