// Package mocks provides mock implementations for testing the festival auth system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// auth port interfaces. The mocks are generated using go:generate directives and
// provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for SessionStore interface from internal/ports.
// This creates MockSessionStore with methods Save, Get, Delete.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/openfest/festival-ui-api/internal/ports SessionStore

// Generate mock for UserDirectory interface from internal/ports.
// This creates MockUserDirectory with methods GetByID, List.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_directory_mock.go github.com/openfest/festival-ui-api/internal/ports UserDirectory
