package model

import (
	"time"
)

// ReturnSlot holds the single pending return-state payload for one owner and flow
type ReturnSlot struct {
	// SlotKey is "<owner>/<flow slot name>"
	SlotKey   string    `gorm:"primaryKey;type:varchar(255)"`
	Owner     string    `gorm:"type:varchar(191);not null"`
	Flow      string    `gorm:"type:varchar(16);not null"`
	Payload   []byte    `gorm:"type:bytea;not null"`
	PostedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the return slot model
func (ReturnSlot) TableName() string {
	return "return_slots"
}
