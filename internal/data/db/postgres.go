package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
	"github.com/bayanihan-ph/relief-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New connects to Postgres by default. Setting DB_DRIVER=sqlite opens a local
// file database instead, which is enough to run the dashboard on a laptop.
func New(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLog,
	}

	driver := utils.GetEnv("DB_DRIVER", "postgres", logg)
	if driver == "sqlite" {
		path := utils.GetEnv("SQLITE_PATH", "relief.db", logg)
		db, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return &Service{db: db, log: serviceLog}, nil
	}

	host := utils.GetEnv("POSTGRES_HOST", "localhost", logg)
	port := utils.GetEnv("POSTGRES_PORT", "5432", logg)
	user := utils.GetEnv("POSTGRES_USER", "postgres", logg)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", logg)
	name := utils.GetEnv("POSTGRES_NAME", "relief", logg)

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name,
	)

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &Service{db: db, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }
