package initializers

import (
	"fmt"

	"github.com/Kariqs/amexan-storefront/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return fmt.Errorf("failed to sync database: %w", err)
	}
	return nil
}
