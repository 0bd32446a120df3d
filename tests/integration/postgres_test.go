//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/welldanyogia/recipe-app-api/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// startPostgres starts a throwaway PostgreSQL container and returns a migrated connection
func startPostgres(t *testing.T) (testcontainers.Container, *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "recipes_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=recipes_test sslmode=disable",
		host, port.Port())

	db, err := database.ConnectWithConfig(database.DriverPostgres, dsn, database.DefaultPoolConfig(), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return container, db
}

// truncateAll empties every table between tests
func truncateAll(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE recipe_tags, recipe_ingredients, recipes, tags, ingredients, users RESTART IDENTITY CASCADE").Error
}
