package storage

import (
	"context"
	"errors"

	"github.com/Kariqs/amexan-storefront/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage keeps each namespace as a row of the storage_entries table.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (g *GormStorage) Load(ctx context.Context, namespace string) ([]byte, error) {
	var entry models.StorageEntry
	err := g.db.WithContext(ctx).Where("namespace = ?", namespace).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Data), nil
}

func (g *GormStorage) Save(ctx context.Context, namespace string, data []byte) error {
	entry := models.StorageEntry{Namespace: namespace, Data: datatypes.JSON(data)}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&entry).Error
}

func (g *GormStorage) Delete(ctx context.Context, namespace string) error {
	return g.db.WithContext(ctx).Unscoped().Where("namespace = ?", namespace).Delete(&models.StorageEntry{}).Error
}

var _ Storage = (*GormStorage)(nil)
