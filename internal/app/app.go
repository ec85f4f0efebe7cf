package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bayanihan-ph/relief-backend/internal/data/db"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	dbService, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := dbService.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clientset, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, clientset)
	if err != nil {
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, serviceset)
	mw := wireMiddleware(log, serviceset)
	router := wireRouter(handlerset, mw)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Clients:  clientset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting server", "addr", a.Cfg.Addr)
	return a.Router.Run(a.Cfg.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Clients.Store != nil {
		if err := a.Clients.Store.Close(); err != nil {
			a.Log.Warn("failed to close redis store", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
