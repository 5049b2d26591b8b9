package models

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a raw status value from a request body.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// CanTransitionTo is consulted before every status update. PENDING may move
// anywhere, IN_PROGRESS can only finish or cancel, COMPLETED and CANCELLED
// are terminal. Re-setting the current status is a no-op and allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case OrderPending:
		return true
	case OrderInProgress:
		return next == OrderCompleted || next == OrderCancelled
	default:
		return false
	}
}

type Order struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	SessionID  uint         `gorm:"not null;index" json:"session_id"`
	Session    TableSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"session"`
	Status     OrderStatus  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	OrderItems []OrderItem  `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}
