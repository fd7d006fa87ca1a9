package model

import "time"

// Record is one keyed blob in the SQL-backed record store.
type Record struct {
	Key       string    `gorm:"primaryKey;column:record_key;size:191" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	Version   uint      `gorm:"not null;default:1" json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
