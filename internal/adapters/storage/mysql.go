package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/ports"
)

// kvEntry is the row model of the kv_entries table.
type kvEntry struct {
	Key       string `gorm:"column:kv_key;primaryKey;size:191"`
	Value     string `gorm:"column:kv_value;type:longtext;not null"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler interface.
func (kvEntry) TableName() string {
	return "kv_entries"
}

// MySQLStore keeps values in the kv_entries table through gorm.
type MySQLStore struct {
	db *gorm.DB
}

var (
	_ ports.KeyValueStore = (*MySQLStore)(nil)
	_ ports.HealthChecker = (*MySQLStore)(nil)
)

// NewMySQLStore opens the database, verifies it and migrates kv_entries.
func NewMySQLStore(ctx context.Context, dsn string, logger *slog.Logger) (*MySQLStore, error) {
	dsn = ensureParam(dsn, "parseTime", "true")
	if !strings.Contains(dsn, "charset=") {
		dsn = ensureParam(dsn, "charset", "utf8mb4")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(gormWriter{logger: logger}, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	s := &MySQLStore{db: db}

	if err := s.Check(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&kvEntry{}); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}

	return s, nil
}

// Get returns the value for key.
func (s *MySQLStore) Get(ctx context.Context, key string) (string, error) {
	var e kvEntry

	err := s.db.WithContext(ctx).Where("kv_key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.NewNotFoundError("key", key)
	}

	if err != nil {
		return "", fmt.Errorf("select %q: %w", key, err)
	}

	return e.Value, nil
}

// Set upserts value under key.
func (s *MySQLStore) Set(ctx context.Context, key, value string) error {
	e := kvEntry{Key: key, Value: value}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("kv_key = ?", key).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

// Close closes the underlying connection pool.
func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Name implements ports.HealthChecker.
func (s *MySQLStore) Name() string {
	return "storage-mysql"
}

// Check pings the database.
func (s *MySQLStore) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// gormWriter routes gorm's log lines into slog.
type gormWriter struct {
	logger *slog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.logger.Warn(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}

func ensureParam(dsn, key, val string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + key + "=" + val
}
