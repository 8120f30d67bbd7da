package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one durable key/value record. Values are JSON documents.
type KVEntry struct {
	Key       string         `gorm:"size:255;primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for KVEntry
func (KVEntry) TableName() string {
	return "kv_entries"
}
