package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of actor roles. Role is immutable after creation.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// AccountStatus is the approval state of a student account. Teachers and
// admins carry no status.
type AccountStatus string

const (
	StatusPendingApproval AccountStatus = "Pending"
	StatusActive          AccountStatus = "Active"
)

// Account represents a registered actor: admin, teacher or student.
// Department and Subject are teacher-only; Status is student-only.
// Deletion is a hard delete: Email carries a unique index, and a soft-deleted
// row would hold the email slot forever, blocking re-registration after an
// admin rejects or removes the account.
type Account struct {
	ID         uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Name       string        `json:"name" gorm:"size:255;not null;index"`
	Email      string        `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role       Role          `json:"role" gorm:"size:50;not null;index"`
	Department string        `json:"department,omitempty" gorm:"size:255"`
	Subject    string        `json:"subject,omitempty" gorm:"size:255"`
	Status     AccountStatus `json:"status,omitempty" gorm:"size:50;index"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
