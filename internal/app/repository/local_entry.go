package repository

import (
	"context"
	"errors"
	"time"

	"riceguard/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry ds.LocalEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set upserts key. The last writer wins.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	entry := ds.LocalEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&ds.LocalEntry{}).Error
}

// Keys lists stored keys, oldest write first.
func (r *Repository) Keys(ctx context.Context) ([]ds.LocalEntry, error) {
	var entries []ds.LocalEntry
	err := r.db.WithContext(ctx).Select("key", "updated_at").Order("updated_at ASC").Find(&entries).Error
	return entries, err
}
