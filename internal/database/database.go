package database

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Connect opens the snapshot database. A postgres:// DSN selects the
// Postgres driver; anything else is treated as a sqlite path, with
// the pure-Go modernc driver so CGO stays off.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info("connecting to postgres snapshot store")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info("using sqlite snapshot store", zap.String("path", dsn))
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		cfg,
	)
}
