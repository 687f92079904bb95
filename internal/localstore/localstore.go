// Package localstore is the gateway's durable key/value snapshot
// storage, the counterpart of the web app's browser storage. Values
// are JSON strings keyed by the same names the web client used.
package localstore

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"doorsteps/internal/database"
)

// Storage keys. The legacy keys are written on every user update for
// backward compatibility with older clients sharing the store; they
// are never read back.
const (
	KeyAuthToken           = "auth_token"
	KeyAuthUser            = "auth_user"
	KeyUserStorage         = "user-storage"
	KeyNotificationStorage = "notification-storage"

	LegacyKeySetupComplete = "userSetupComplete"
	LegacyKeyName          = "userName"
	LegacyKeyPhone         = "userPhone"
	LegacyKeyEmail         = "userEmail"
	LegacyKeyGender        = "userGender"
	LegacyKeyAgeGroup      = "userAgeGroup"
	LegacyKeyMode          = "userMode"
)

type snapshot struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (snapshot) TableName() string { return "snapshots" }

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open connects to the snapshot database and migrates the table.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	db, err := database.Connect(dsn, log)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// NewWithDB wraps an already-open connection (tests, shared DBs).
func NewWithDB(db *gorm.DB, log *zap.Logger) (*Store, error) {
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	var row snapshot
	err := s.db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *Store) Put(key, value string) error {
	row := snapshot{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *Store) PutJSON(key string, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, string(buf))
}

// GetJSON unmarshals the stored value into out. Returns false when
// the key is absent.
func (s *Store) GetJSON(key string, out any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// A corrupt snapshot is treated as absent rather than fatal.
		s.log.Warn("dropping unreadable snapshot", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

// Delete removes the given keys, ignoring ones that do not exist.
func (s *Store) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Where("key IN ?", keys).Delete(&snapshot{}).Error
}
