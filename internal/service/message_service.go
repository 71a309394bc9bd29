package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolbook/internal/errors"
	"schoolbook/internal/live"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

// MessageService lets students write to teachers and teachers reply.
type MessageService interface {
	Send(ctx context.Context, actor *model.Account, teacherEmail, content string) (*model.Message, error)
	Reply(ctx context.Context, actor *model.Account, id uuid.UUID, reply string) (*model.Message, error)
	ListForActor(ctx context.Context, actor *model.Account) ([]model.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
	accounts repository.AccountRepository
	hub      *live.Hub
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, accounts repository.AccountRepository, hub *live.Hub) MessageService {
	return &messageService{
		messages: messages,
		accounts: accounts,
		hub:      hub,
	}
}

// Send files a message from a student to a teacher.
func (s *messageService) Send(ctx context.Context, actor *model.Account, teacherEmail, content string) (*model.Message, error) {
	if actor == nil || actor.Role != model.RoleStudent {
		return nil, errors.ErrNotAllowed
	}
	if teacherEmail == "" || content == "" {
		return nil, errors.ErrMissingField
	}

	teacher, err := s.accounts.FindByEmail(ctx, teacherEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	if teacher.Role != model.RoleTeacher {
		return nil, errors.ErrNotFound
	}

	msg := &model.Message{
		StudentID:    actor.ID,
		StudentName:  actor.Name,
		StudentEmail: actor.Email,
		TeacherName:  teacher.Name,
		TeacherEmail: teacher.Email,
		Content:      content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.Notify(ctx, live.TopicMessages)
	return msg, nil
}

// Reply sets the teacher reply on a message. Only the addressed teacher may
// reply; a second reply overwrites the first.
func (s *messageService) Reply(ctx context.Context, actor *model.Account, id uuid.UUID, reply string) (*model.Message, error) {
	if reply == "" {
		return nil, errors.ErrMissingField
	}

	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	if actor == nil || actor.Role != model.RoleTeacher || actor.Email != msg.TeacherEmail {
		return nil, errors.ErrNotAllowed
	}

	if err := s.messages.UpdateReply(ctx, id, reply); err != nil {
		return nil, err
	}
	msg.TeacherReply = reply

	s.hub.Notify(ctx, live.TopicMessages)
	return msg, nil
}

// ListForActor returns the actor's message feed, newest first.
func (s *messageService) ListForActor(ctx context.Context, actor *model.Account) ([]model.Message, error) {
	if actor == nil {
		return nil, errors.ErrNotAllowed
	}
	switch actor.Role {
	case model.RoleStudent:
		return s.messages.ListByStudentEmail(ctx, actor.Email)
	case model.RoleTeacher:
		return s.messages.ListByTeacherEmail(ctx, actor.Email)
	default:
		return nil, errors.ErrNotAllowed
	}
}
