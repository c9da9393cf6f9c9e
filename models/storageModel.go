package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StorageEntry holds one persisted state namespace as a JSON document.
type StorageEntry struct {
	gorm.Model
	Namespace string         `gorm:"size:64;uniqueIndex"`
	Data      datatypes.JSON `gorm:"type:json"`
}
