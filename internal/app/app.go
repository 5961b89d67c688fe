// Package app assembles the server process: configuration from the
// environment, the content catalog, the profile store, the hub, and the HTTP
// surface. Anything wrong at this stage is fatal.
package app

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	server "rookhaven/server"
	"rookhaven/server/internal/content"
	"rookhaven/server/internal/persist"
	"rookhaven/server/internal/world"
	"rookhaven/server/logging"
)

// Config is the process configuration, read once from the environment.
type Config struct {
	Addr       string
	ContentDir string
	ProfileDB  string
	Tick       time.Duration
	Autosave   time.Duration
	Seed       int64
}

// ConfigFromEnv reads the configuration, falling back to development
// defaults for anything unset.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:       envString("ROOKHAVEN_ADDR", ":8080"),
		ContentDir: envString("ROOKHAVEN_CONTENT_DIR", content.DefaultDir()),
		ProfileDB:  envString("ROOKHAVEN_PROFILE_DB", "profiles.db"),
		Tick:       envDuration("ROOKHAVEN_TICK_MS", server.DefaultTickInterval),
		Autosave:   envDuration("ROOKHAVEN_AUTOSAVE_MS", server.DefaultAutosaveInterval),
		Seed:       time.Now().UnixNano(),
	}
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		log.Printf("ignoring %s=%q: want a positive millisecond count", key, v)
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// App is the assembled process.
type App struct {
	cfg   Config
	hub   *server.Hub
	store *persist.Store
	mux   *http.ServeMux
}

// New builds the process or returns the aggregated startup failure.
func New(cfg Config) (*App, error) {
	catalog, err := content.Load(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content from %s:\n%w", cfg.ContentDir, err)
	}
	store, err := persist.Open(cfg.ProfileDB)
	if err != nil {
		return nil, err
	}

	pub := logging.NewConsole(log.Default(), logging.SeverityInfo)
	w := world.New(world.DefaultConfig(), catalog, pub, cfg.Seed)
	hub := server.NewHub(w, store, pub)
	hub.SetIntervals(cfg.Tick, cfg.Autosave)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("ok"))
	})

	return &App{cfg: cfg, hub: hub, store: store, mux: mux}, nil
}

// Handler exposes the HTTP surface, for tests.
func (a *App) Handler() http.Handler { return a.mux }

// Run starts the simulation loop and serves HTTP until the listener fails.
func (a *App) Run() error {
	stop := make(chan struct{})
	defer close(stop)
	go a.hub.RunSimulation(stop)

	log.Printf("listening on %s", a.cfg.Addr)
	err := http.ListenAndServe(a.cfg.Addr, a.mux)
	a.store.Close()
	return err
}
