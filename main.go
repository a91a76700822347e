package main

import (
	appmodules "autocomplete/app"
	coremodules "autocomplete/core/app"
	"autocomplete/core/config"
	"autocomplete/core/database"
	"autocomplete/core/logger"
	"autocomplete/core/metrics"
	"autocomplete/core/module"
	"autocomplete/core/router"
	"autocomplete/core/router/middleware"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// @title Autocomplete API
// @description Plain text autocomplete endpoints for jQuery autocomplete widgets
// @version 1.0.0
// @BasePath /api
// @schemes http https
// @produce plain

// App represents the application with chained initialization
type App struct {
	config  *config.Config
	db      *database.Database
	router  *router.Router
	logger  logger.Logger
	metrics *metrics.Collector

	// State
	running bool
	verbose bool
}

// New creates a new application instance
func New() *App {
	verbose := false
	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			break
		}
	}
	return &App{verbose: verbose}
}

// Start initializes and starts the application
func (app *App) Start() error {
	return app.
		loadEnvironment().
		initConfig().
		initLogger().
		initDatabase().
		initRouter().
		autoDiscoverModules().
		setupRoutes().
		displayServerInfo().
		run()
}

// loadEnvironment loads environment variables
func (app *App) loadEnvironment() *App {
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()
	return app
}

// initConfig initializes configuration
func (app *App) initConfig() *App {
	app.config = config.NewConfig()
	return app
}

// initLogger initializes the logger
func (app *App) initLogger() *App {
	level := "info"
	if app.verbose {
		level = "debug"
	}
	logConfig := logger.Config{
		Environment: app.config.Env,
		LogPath:     "logs",
		Level:       level,
	}

	log, err := logger.NewLogger(logConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	app.logger = log
	return app
}

// initDatabase initializes the database connection
func (app *App) initDatabase() *App {
	db, err := database.InitDB(app.config)
	if err != nil {
		app.logger.Error("Failed to initialize database", logger.String("error", err.Error()))
		panic(fmt.Sprintf("Database initialization failed: %v", err))
	}

	app.db = db

	if app.verbose {
		app.logger.Info("Database connected", logger.String("driver", app.config.DBDriver))
	}

	return app
}

// initRouter initializes the router with middleware
func (app *App) initRouter() *App {
	app.router = router.New()
	app.setupMiddleware()

	if app.verbose {
		app.logger.Info("Router and middleware initialized")
	}

	return app
}

// setupMiddleware configures the middleware stack
func (app *App) setupMiddleware() {
	middleware.ApplyConfigurableMiddleware(app.router, &app.config.Middleware)

	if app.config.MetricsEnabled {
		app.metrics = metrics.NewCollector("autocomplete", app.config.Version)
		app.router.Use(app.metrics.Middleware())
	}

	app.router.Use(func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			path := c.Request.URL.Path
			if !app.config.Middleware.IsLoggingRequired(path) {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			app.logger.Info("Request",
				logger.String("method", c.Request.Method),
				logger.String("path", path),
				logger.Int("status", c.Writer.Status()),
				logger.Duration("duration", time.Since(start)),
				logger.String("ip", c.ClientIP()),
				logger.String("request_id", middleware.RequestID(c)),
			)
			return err
		}
	})
}

// autoDiscoverModules registers app modules first so their tables exist
// before the autocomplete handlers are mounted
func (app *App) autoDiscoverModules() *App {
	deps := module.Dependencies{
		DB:      app.db.DB,
		Router:  app.router.Group("/api"),
		Logger:  app.logger,
		Config:  app.config,
		Metrics: app.metrics,
	}

	initializer := module.NewInitializer(app.logger)

	appOrchestrator := module.NewAppOrchestrator(initializer, appmodules.NewAppModules())
	appInitialized, err := appOrchestrator.InitializeAppModules(deps)
	if err != nil {
		app.logger.Error("Failed to initialize app modules", logger.String("error", err.Error()))
	}

	coreProvider := coremodules.NewCoreModules(appmodules.GetAutocompleteRegistry())
	coreOrchestrator := module.NewCoreOrchestrator(initializer, coreProvider)
	coreInitialized, err := coreOrchestrator.InitializeCoreModules(deps)
	if err != nil {
		app.logger.Error("Failed to initialize core modules", logger.String("error", err.Error()))
	}

	if app.verbose {
		app.logger.Info("Modules initialized",
			logger.Int("app", len(appInitialized)),
			logger.Int("core", len(coreInitialized)))
	}

	return app
}

// setupRoutes sets up basic system routes
func (app *App) setupRoutes() *App {
	app.router.GET("/health", func(c *router.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"version": app.config.Version,
		})
	})

	if app.metrics != nil {
		app.metrics.Routes(app.router)
	}

	return app
}

// displayServerInfo shows server startup information
func (app *App) displayServerInfo() *App {
	localIP := app.getLocalIP()
	port := app.config.ServerPort

	fmt.Printf("\n\033[1;32mAutocomplete Ready!\033[0m\n\n")
	fmt.Printf("\033[36mServer URLs:\033[0m\n")
	fmt.Printf("  Local:   http://localhost%s\n", port)
	fmt.Printf("  Network: http://%s%s\n\n", localIP, port)

	return app
}

// getLocalIP gets the local network IP address
func (app *App) getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return "localhost"
}

// run starts the HTTP server
func (app *App) run() error {
	app.running = true
	port := app.config.ServerPort

	if app.verbose {
		app.logger.Info("Server starting", logger.String("port", port))
	}
	defer app.logger.Sync()

	err := app.router.Run(port)
	if err != nil {
		if strings.Contains(err.Error(), "bind: address already in use") {
			app.logger.Error("Server failed to start - Port already in use",
				logger.String("port", port),
				logger.String("error", err.Error()))
			return fmt.Errorf("port %s is already in use. Please:\n  • Stop any other servers running on this port\n  • Change the SERVER_PORT in your .env file\n  • Use a different port with: export SERVER_PORT=:8101", port)
		}
		app.logger.Error("Server failed to start",
			logger.String("error", err.Error()))
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

func main() {
	app := New()

	if err := app.Start(); err != nil {
		fmt.Printf("\n\033[31mApplication failed to start:\033[0m\n%v\n\n", err)
		os.Exit(1)
	}
}
