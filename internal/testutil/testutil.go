package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/pokedex-web/internal/api"
	"github.com/dom/pokedex-web/internal/config"
	"github.com/dom/pokedex-web/internal/pokeapi"
	"github.com/dom/pokedex-web/internal/render"
	"github.com/dom/pokedex-web/internal/repository"
	"github.com/dom/pokedex-web/internal/repository/memory"
	repoPostgres "github.com/dom/pokedex-web/internal/repository/postgres"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection.
// The test is skipped in -short mode or when no container runtime is
// available.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_pokedex"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"handoff_slots",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Port = "0" // Random port
	cfg.Environment = "test"
	cfg.SessionSecret = "test-session-secret-for-testing-only"
	cfg.HTTPTimeoutSeconds = 5
	return cfg
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	API      *FakePokeAPI
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer wires the real router against a FakePokeAPI and in-memory
// hand-off storage. opts adjust the config before services are built.
func NewTestServer(t *testing.T, opts ...func(*config.Config)) *TestServer {
	t.Helper()

	fake := NewFakePokeAPI(t)
	cfg := TestConfig()
	cfg.PokeAPIBaseURL = fake.BaseURL()
	for _, opt := range opts {
		opt(cfg)
	}

	repos := memory.NewRepositories()
	client := pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.HTTPTimeout())
	services := service.NewServices(repos, client, cfg)

	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	router := api.NewRouter(services, renderer, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		API:      fake,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// URL returns the absolute URL for a page path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the ws:// URL for an API path
func (ts *TestServer) WebSocketURL(path string) string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return fmt.Sprintf("%s/api/v1%s", wsURL, path)
}

// Browser returns a client that keeps the session cookie between requests,
// like a browser tab. Redirects are not followed so tests can assert on
// them.
func (ts *TestServer) Browser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
