// Package mocks holds gomock doubles of the core ports.
//
// Regenerate after changing an interface:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	dir := mocks.NewMockDirectoryClient(ctrl)
//	dir.EXPECT().Authenticate(gomock.Any(), "jdoe", "pw").Return(true, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=directory_client_mock.go github.com/intranet-portal/portal-api/internal/core/ports DirectoryClient
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/intranet-portal/portal-api/internal/core/ports UserRepository
