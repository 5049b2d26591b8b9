package models

import "time"

type Table struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TableNumber int            `gorm:"unique;not null" json:"table_number"`
	Sessions    []TableSession `gorm:"foreignKey:TableID" json:"sessions,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}
