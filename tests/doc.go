// Package tests holds shared test support for the recipe API: testify mocks
// of the repository and storage interfaces, model builders, and the
// PostgreSQL integration suite (build tag "integration").
package tests
