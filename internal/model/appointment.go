package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is the approval lifecycle of a booking request.
type AppointmentStatus string

const (
	AppointmentPending  AppointmentStatus = "Pending"
	AppointmentApproved AppointmentStatus = "Approved"
	AppointmentRejected AppointmentStatus = "Rejected"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentApproved, AppointmentRejected:
		return true
	}
	return false
}

// Appointment is a booking request between one student and one teacher.
// Both parties are denormalized onto the record so listings need no joins.
//
// Date and Time are stored as strings ("2006-01-02" / "15:04" expected) and
// ordered lexicographically; callers are expected to supply zero-padded
// values. No DeletedAt: cancellation removes the row for good.
type Appointment struct {
	ID             uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID      uuid.UUID         `json:"student_id" gorm:"type:char(36);index"`
	StudentName    string            `json:"student_name" gorm:"size:255"`
	StudentEmail   string            `json:"student_email" gorm:"size:255;index"`
	TeacherID      uuid.UUID         `json:"teacher_id" gorm:"type:char(36);index"`
	TeacherName    string            `json:"teacher_name" gorm:"size:255"`
	TeacherEmail   string            `json:"teacher_email" gorm:"size:255;index"`
	TeacherSubject string            `json:"teacher_subject" gorm:"size:255"`
	Date           string            `json:"date" gorm:"size:32;not null;index:idx_appointments_date_time,priority:1"`
	Time           string            `json:"time" gorm:"size:32;not null;index:idx_appointments_date_time,priority:2"`
	Reason         string            `json:"reason" gorm:"type:text"`
	Status         AppointmentStatus `json:"status" gorm:"size:50;default:'Pending';index"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
