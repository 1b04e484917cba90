package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditedAsset is one physical asset's audit record for one audit plan.
type AuditedAsset struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	AuditPlanID string `gorm:"type:uuid;index;not null" json:"audit_plan_id"`

	// AssetID references the master asset record and never changes.
	AssetID string `gorm:"type:uuid;not null" json:"asset_id"`
	// AssetTag is the external identifier printed on the asset label.
	AssetTag string `json:"asset_tag"`
	Model    string `json:"model"`

	// Baseline, captured when the plan was generated.
	OriginalLocation string `json:"original_location"`
	OriginalUser     string `json:"original_user"`

	// Observed during the audit.
	CurrentStatus   AssetStatus `gorm:"type:varchar(32)" json:"current_status"`
	CurrentLocation string      `json:"current_location"`
	CurrentUser     string      `json:"current_user"`

	// Resolved is set once the finding is closed out without a corrective action.
	Resolved     bool    `gorm:"not null;default:false" json:"resolved"`
	AuditorNotes *string `json:"auditor_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *AuditedAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// EffectiveLocation is the current location when observed, else the baseline one.
func (a AuditedAsset) EffectiveLocation() string {
	if a.CurrentLocation != "" {
		return a.CurrentLocation
	}
	return a.OriginalLocation
}

// EffectiveUser is the observed user when recorded, else the baseline one.
func (a AuditedAsset) EffectiveUser() string {
	if a.CurrentUser != "" {
		return a.CurrentUser
	}
	return a.OriginalUser
}
