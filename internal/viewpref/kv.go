package viewpref

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

// KV is the storage behind view preferences. Implementations return
// found=false for missing keys instead of an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

type prefRow struct {
	Key       string    `gorm:"primaryKey;column:pref_key;type:text"`
	Value     string    `gorm:"column:pref_value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (prefRow) TableName() string { return "view_preferences" }

type gormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) KV {
	return &gormKV{db: db}
}

func (s *gormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var row prefRow
	err := s.db.WithContext(ctx).
		Where("pref_key = ?", key).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *gormKV) Set(ctx context.Context, key, value string) error {
	row := prefRow{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Save(&row).Error
}

// MemoryKV is an in-process KV for tests and single-node setups.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

func (s *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemoryKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}
