package main

import (
	"expvar"
	"flag"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/emzola/bookshelf/config"
	"github.com/emzola/bookshelf/internal/data"
	"github.com/emzola/bookshelf/internal/jsonlog"
)

const version = "1.0.0"

// The application struct holds the dependencies for our HTTP handlers,
// helpers and middleware.
type application struct {
	config config.Config
	logger *jsonlog.Logger
	models data.Models
	wg     sync.WaitGroup
}

func main() {
	var (
		configPath string
		port       int
		debug      bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flag.IntVar(&port, "port", 0, "API server port (overrides the configured value)")
	flag.BoolVar(&debug, "debug", false, "Enable debug level logging")
	flag.Parse()

	minLevel := jsonlog.LevelInfo
	if debug {
		minLevel = jsonlog.LevelDebug
	}
	logger := jsonlog.New(os.Stdout, minLevel)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	// Load the catalogue from disk. Serving without valid data is not a
	// supported state, so a missing or unparsable document is fatal.
	store := data.NewStore(cfg.Store.BooksFile, cfg.Store.ReviewsFile, logger)
	err = store.Load()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	stats := store.Stats()
	logger.PrintInfo("catalogue loaded", map[string]string{
		"books":   strconv.Itoa(stats.Books),
		"reviews": strconv.Itoa(stats.Reviews),
	})

	// Publish a new "version" variable in the expvar handler containing
	// the application version number
	expvar.NewString("version").Set(version)

	// Publish the number of active goroutines
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	// Publish the live catalogue sizes
	expvar.Publish("catalogue", expvar.Func(func() any {
		return store.Stats()
	}))

	// Publish the current Unix timestamp
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	app := &application{
		config: cfg,
		logger: logger,
		models: *data.NewModels(store),
	}

	// Start the HTTP server
	err = app.serve()
	if err != nil {
		app.logger.PrintFatal(err, nil)
	}
}
