package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CorrectiveAction struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	AuditPlanID  string `gorm:"type:uuid;index;not null" json:"audit_plan_id"`
	// At most one open action per asset; mirrored in db/migrations.
	AuditAssetID string `gorm:"type:uuid;index;index:idx_corrective_actions_open_asset,unique,where:status <> 'completed';not null" json:"audit_asset_id"`
	Issue        string `gorm:"not null" json:"issue"`
	Action       string `gorm:"not null" json:"action"`
	Notes        string `json:"notes"`

	// AssignedTo is an employee id; empty means unassigned.
	AssignedTo    string       `gorm:"type:varchar(64)" json:"assigned_to"`
	Priority      Priority     `gorm:"type:varchar(16)" json:"priority"`
	Status        ActionStatus `gorm:"type:varchar(16);index" json:"status"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	CompletedDate *time.Time   `json:"completed_date,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (a *CorrectiveAction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
