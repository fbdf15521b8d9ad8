package testhelper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const templateDB = "waitlist_template"

var (
	once     sync.Once
	adminDSN string
	hostPort string
	initErr  error
	dbSeq    atomic.Int64
	createMu sync.Mutex
)

// SetupTestDB starts a shared PostgreSQL container (once for the entire test
// run), applies goose migrations to a template database, and returns a
// pgxpool.Pool connected to a fresh database cloned from that template.
//
// Waitlist state is global (positions form one permutation over the whole
// table), so each test gets its own database instead of sharing rows; tests
// may still run in parallel. The pool is closed via t.Cleanup; the container
// lives until the process exits.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		adminDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("waitlist_test_%d", dbSeq.Add(1))
	if err := createDatabase(ctx, dbName); err != nil {
		t.Fatalf("testhelper: create database %s: %v", dbName, err)
	}

	pool, err := pgxpool.New(ctx, dsnForDB(dbName))
	if err != nil {
		t.Fatalf("testhelper: failed to create pgxpool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

// createDatabase clones the migrated template into a new database.
// Serialized because CREATE DATABASE ... TEMPLATE fails while another
// session is connected to the template.
func createDatabase(ctx context.Context, name string) error {
	createMu.Lock()
	defer createMu.Unlock()

	db, err := sql.Open("pgx", adminDSN)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %s TEMPLATE %s", name, templateDB))
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}

	return nil
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	hostPort = fmt.Sprintf("%s:%s", host, port.Port())
	admin := dsnForDB("testdb")

	db, err := sql.Open("pgx", admin)
	if err != nil {
		return "", fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("db ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+templateDB); err != nil {
		return "", fmt.Errorf("create template database: %w", err)
	}

	tmpl, err := sql.Open("pgx", dsnForDB(templateDB))
	if err != nil {
		return "", fmt.Errorf("sql.Open template: %w", err)
	}
	defer tmpl.Close()

	// Use goose.NewProvider with os.DirFS — it correctly handles $$-delimited
	// PL/pgSQL functions, unlike the legacy goose.Up which splits on semicolons.
	provider, err := goose.NewProvider(goose.DialectPostgres, tmpl, os.DirFS(migrationsPath()))
	if err != nil {
		return "", fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return "", fmt.Errorf("goose up: %w", err)
	}

	// goose keeps an idle connection; close it before the template is cloned.
	if err := tmpl.Close(); err != nil {
		return "", fmt.Errorf("close template connection: %w", err)
	}

	return admin, nil
}

func dsnForDB(name string) string {
	return fmt.Sprintf("postgres://testuser:testpass@%s/%s?sslmode=disable", hostPort, name)
}

// migrationsPath resolves the absolute path to migrations/ relative to the
// current source file using runtime.Caller.
func migrationsPath() string {
	_, currentFile, _, _ := runtime.Caller(0)
	// currentFile is .../internal/adapter/postgres/testhelper/db.go
	// Navigate up 4 levels to the module root, then into migrations/
	return filepath.Join(filepath.Dir(currentFile), "..", "..", "..", "..", "migrations")
}
