package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolbook/internal/model"
)

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error)
	ListByStudentEmail(ctx context.Context, email string) ([]model.Message, error)
	ListByTeacherEmail(ctx context.Context, email string) ([]model.Message, error)
	UpdateReply(ctx context.Context, id uuid.UUID, reply string) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create creates a new message.
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// FindByID finds a message by ID.
func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	var msg model.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByStudentEmail lists a student's messages, newest first.
func (r *messageRepository) ListByStudentEmail(ctx context.Context, email string) ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("student_email = ?", email).
		Order("created_at desc").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListByTeacherEmail lists messages addressed to a teacher, newest first.
func (r *messageRepository) ListByTeacherEmail(ctx context.Context, email string) ([]model.Message, error) {
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("teacher_email = ?", email).
		Order("created_at desc").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// UpdateReply overwrites the teacher reply on a message.
func (r *messageRepository) UpdateReply(ctx context.Context, id uuid.UUID, reply string) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Update("teacher_reply", reply).Error
}
