package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/interiorhome/internal/config"
	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the store and brings the schema up to date.
// A connection failure after retries is fatal to the caller; nothing
// here is retried at request time.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is empty, check the environment configuration")
	}
	logLevel := gormlogger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = gormlogger.Info
	}
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(open(dsn), cfg)
		if err == nil {
			break
		}
		logger.L.Warn().Err(err).Msg("retrying DB connection")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	logger.L.Info().Str("dsn", MaskDSN(dsn)).Msg("connected to database")

	// MIGRATIONS=1 runs SQL migrations via golang-migrate (postgres);
	// otherwise AutoMigrate keeps dev setups working against sqlite.
	if config.ParseBool("MIGRATIONS", false) && IsPostgres(dsn) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []any{&models.User{}, &models.Design{}, &models.FeaturedCard{}} {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	for _, table := range []string{"users", "designs", "featured_cards"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if config.ParseBool("DB_SEED", false) {
		seed(db)
	}
	return db, nil
}

func open(dsn string) gorm.Dialector {
	if IsPostgres(dsn) {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// seed creates the initial admin account when requested via DB_SEED.
// Credentials come from ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD.
func seed(db *gorm.DB) {
	username := envOr("ADMIN_USERNAME", "admin")
	email := envOr("ADMIN_EMAIL", "admin@example.com")
	password := envOr("ADMIN_PASSWORD", "")
	if password == "" {
		logger.L.Warn().Msg("DB_SEED set but ADMIN_PASSWORD empty, skipping admin seed")
		return
	}
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		logger.L.Error().Err(err).Msg("admin seed: hash failed")
		return
	}
	admin := models.User{Username: username, Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		logger.L.Error().Err(err).Msg("admin seed: create failed")
		return
	}
	logger.L.Info().Str("username", username).Msg("seeded admin account")
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(osGetenv(key)); v != "" {
		return v
	}
	return def
}
