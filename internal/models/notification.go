package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification kinds produced by the background worker.
const (
	NotificationApplicationSubmitted = "application_submitted"
	NotificationApplicationStatus    = "application_status"
)

// Notification is an in-app message materialised by the worker when an
// application is submitted or its status changes.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Kind      string    `gorm:"type:varchar(32);not null" json:"kind"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
