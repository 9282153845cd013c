// Package mocks provides mock implementations for testing the admin panel services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), "u1").Return(user, nil)
package mocks

// Create, GetByID, GetByUsername, GetByEmail, List, Update, Delete, Count
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/target/admin-panel/internal/core UserRepository

// Create, GetByID, GetBySlug, List, Update, Delete, Count
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=template_repository_mock.go github.com/target/admin-panel/internal/core TemplateRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=menu_repository_mock.go github.com/target/admin-panel/internal/core MenuRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=form_repository_mock.go github.com/target/admin-panel/internal/core FormRepository

// Get, Put
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=settings_repository_mock.go github.com/target/admin-panel/internal/core SettingsRepository
