package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRecord struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (slotRecord) TableName() string {
	return "kv_slots"
}

// GormSlot keeps slot values in a single table, one row per key.
type GormSlot struct {
	db *gorm.DB
}

func NewGormSlot(db *gorm.DB) (*GormSlot, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm connection required")
	}
	if err := db.AutoMigrate(&slotRecord{}); err != nil {
		return nil, fmt.Errorf("migrating kv_slots: %w", err)
	}
	return &GormSlot{db: db}, nil
}

func (g *GormSlot) Get(ctx context.Context, key string) (string, bool, error) {
	var record slotRecord
	err := g.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return record.Value, true, nil
}

func (g *GormSlot) Set(ctx context.Context, key, value string) error {
	record := slotRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}
