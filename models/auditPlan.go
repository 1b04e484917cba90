package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditPlan is a time-boxed campaign auditing a snapshot of assets.
type AuditPlan struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// AuditorAssignments maps plan locations to the auditor covering them.
	AuditorAssignments []AuditorAssignment `gorm:"foreignKey:AuditPlanID" json:"auditor_assignments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *AuditPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AuditorAssignment puts one auditor in charge of one location of a plan.
type AuditorAssignment struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	AuditPlanID string `gorm:"type:uuid;index" json:"audit_plan_id"`
	Location    string `gorm:"not null" json:"location"`
	AuditorID   string `gorm:"type:uuid" json:"auditor_id"`
}

func (a *AuditorAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
