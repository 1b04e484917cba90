package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReminderLog records one consolidated reminder sent (or attempted) to an assignee.
type ReminderLog struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	AuditPlanID string `gorm:"type:uuid;index" json:"audit_plan_id"`
	AssigneeID  string `gorm:"type:varchar(64)" json:"assignee_id"`

	// ActionIDs is the JSON array of corrective action ids bundled in the reminder.
	ActionIDs datatypes.JSON `json:"action_ids"`

	Outcome   ReminderOutcome `gorm:"type:varchar(16)" json:"outcome"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
