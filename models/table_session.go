package models

import "time"

// TableSession records one party occupying a table. EndTime stays NULL while
// the session is active; a table keeps every historical session.
type TableSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TableID      uint       `gorm:"not null;index" json:"table_id"`
	Table        Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	CustomerName *string    `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	SessionKey   string     `gorm:"type:varchar(36);uniqueIndex" json:"session_key"`
	StartTime    time.Time  `gorm:"not null" json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Orders       []Order    `gorm:"foreignKey:SessionID" json:"orders,omitempty"`
}

func (s *TableSession) Active() bool {
	return s.EndTime == nil
}
