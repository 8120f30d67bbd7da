package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm keeps values in the kv_entries table as jsonb.
type Gorm struct {
	db     *gorm.DB
	prefix string
}

func NewGorm(db *gorm.DB, prefix string) *Gorm {
	return &Gorm{db: db, prefix: prefix}
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := g.db.WithContext(ctx).Where("key = ?", g.prefix+key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Set upserts the entry so a single statement covers first write and overwrite.
func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{
		Key:       g.prefix + key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (g *Gorm) Remove(ctx context.Context, key string) error {
	err := g.db.WithContext(ctx).Where("key = ?", g.prefix+key).Delete(&models.KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
