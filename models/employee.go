package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a roster entry that can be assigned corrective actions.
type Employee struct {
	ID         string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string       `gorm:"not null" json:"name"`
	Email      string       `json:"email"`
	Location   string       `json:"location"`
	Department string       `json:"department"`
	Role       EmployeeRole `gorm:"type:varchar(16);default:employee" json:"role"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Candidate is the roster view the assignment resolver works on.
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location,omitempty"`
	Department string `json:"department,omitempty"`
}

func (e Employee) Candidate() Candidate {
	return Candidate{ID: e.ID, Name: e.Name, Location: e.Location, Department: e.Department}
}
