package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a note from a student to a teacher, with an optional reply.
// The reply is a plain overwrite; there is no thread model.
type Message struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID    uuid.UUID `json:"student_id" gorm:"type:char(36);index"`
	StudentName  string    `json:"student_name" gorm:"size:255"`
	StudentEmail string    `json:"student_email" gorm:"size:255;index"`
	TeacherName  string    `json:"teacher_name" gorm:"size:255"`
	TeacherEmail string    `json:"teacher_email" gorm:"size:255;index"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	TeacherReply string    `json:"teacher_reply,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
