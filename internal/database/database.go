package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/config"
	logging "github.com/shouta0715/shunsaku-monorepo-sub001/internal/logging"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

// Init opens the Postgres connection through lib/pq, wraps it with GORM,
// and runs migrations. The returned *gorm.DB is injected into the
// repositories; nothing reads it as ambient state.
func Init(log *zap.Logger) (*gorm.DB, error) {
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established successfully.")
	if err := runMigrations(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func runMigrations(db *gorm.DB, log *zap.Logger) error {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := db.AutoMigrate(
		&models.User{},
		&models.SurveyRecord{},
		&models.Response{},
		&models.ScoreRecord{},
		&models.Alert{},
	)
	if err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	log.Info("Database migrations completed successfully.")

	// Covering index for the alert list path: newest alerts per user.
	alertsIndex := `CREATE INDEX IF NOT EXISTS idx_alerts_list ON alerts (user_id, created_at DESC, seq);`
	if err := db.Exec(alertsIndex).Error; err != nil {
		return fmt.Errorf("failed to create custom index on alerts table: %w", err)
	}

	// Latest-score lookups for the team roll-up.
	scoresIndex := `CREATE INDEX IF NOT EXISTS idx_scores_latest ON score_records (user_id, score_date DESC);`
	if err := db.Exec(scoresIndex).Error; err != nil {
		return fmt.Errorf("failed to create custom index on score_records table: %w", err)
	}

	log.Info("Custom indexes ensured successfully.")
	return nil
}
