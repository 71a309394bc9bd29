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

// AppointmentService drives the booking request lifecycle: created by a
// student, approved or rejected once by the addressed teacher, cancelled by
// the owning student while still pending, removed by an admin at any time.
type AppointmentService interface {
	Request(ctx context.Context, actor *model.Account, teacherEmail, date, timeStr, reason string) (*model.Appointment, error)
	SetStatus(ctx context.Context, actor *model.Account, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error)
	Cancel(ctx context.Context, actor *model.Account, id uuid.UUID) error
	List(ctx context.Context, actor *model.Account) ([]model.Appointment, error)
	ListPending(ctx context.Context, actor *model.Account) ([]model.Appointment, error)
	Teachers(ctx context.Context) ([]model.Account, error)
}

type appointmentService struct {
	appts     repository.AppointmentRepository
	accounts  repository.AccountRepository
	hub       *live.Hub
	validator *ScheduleValidator
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(appts repository.AppointmentRepository, accounts repository.AccountRepository, hub *live.Hub) AppointmentService {
	return &appointmentService{
		appts:     appts,
		accounts:  accounts,
		hub:       hub,
		validator: NewScheduleValidator(),
	}
}

// Request files a new booking request with status Pending. Every field is
// required; nothing is written on validation failure. The teacher's name and
// subject are denormalized onto the record at creation time.
//
// There is no double-booking check: two students can request the same slot,
// as could the same student twice.
func (s *appointmentService) Request(ctx context.Context, actor *model.Account, teacherEmail, date, timeStr, reason string) (*model.Appointment, error) {
	if actor == nil || actor.Role != model.RoleStudent {
		return nil, errors.ErrNotAllowed
	}
	if actor.Status != model.StatusActive {
		return nil, errors.ErrNotAllowed
	}
	if teacherEmail == "" || date == "" || timeStr == "" || reason == "" {
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

	appt := &model.Appointment{
		StudentID:      actor.ID,
		StudentName:    actor.Name,
		StudentEmail:   actor.Email,
		TeacherID:      teacher.ID,
		TeacherName:    teacher.Name,
		TeacherEmail:   teacher.Email,
		TeacherSubject: teacher.Subject,
		Date:           s.validator.NormalizeDate(date),
		Time:           s.validator.NormalizeTime(timeStr),
		Reason:         reason,
		Status:         model.AppointmentPending,
	}
	if err := s.appts.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.hub.Notify(ctx, live.TopicAppointments)
	return appt, nil
}

// SetStatus applies the single allowed transition Pending -> Approved or
// Pending -> Rejected. Only the addressed teacher may do it, and only while
// the request is still Pending; a second attempt fails and leaves the record
// unchanged.
func (s *appointmentService) SetStatus(ctx context.Context, actor *model.Account, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if status != model.AppointmentApproved && status != model.AppointmentRejected {
		return nil, errors.ErrInvalidInput
	}
	// role check before the lookup so non-teachers cannot tell which IDs exist
	if actor == nil || actor.Role != model.RoleTeacher {
		return nil, errors.ErrNotAllowed
	}

	appt, err := s.appts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	if actor.Email != appt.TeacherEmail {
		return nil, errors.ErrNotAllowed
	}
	if appt.Status != model.AppointmentPending {
		return nil, errors.ErrNotAllowed
	}

	if err := s.appts.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	appt.Status = status

	s.hub.Notify(ctx, live.TopicAppointments)
	return appt, nil
}

// Cancel removes a booking request for good. The owning student may cancel
// while the request is Pending; an admin may remove any appointment at any
// time.
func (s *appointmentService) Cancel(ctx context.Context, actor *model.Account, id uuid.UUID) error {
	if actor == nil {
		return errors.ErrNotAllowed
	}

	appt, err := s.appts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}

	switch actor.Role {
	case model.RoleAdmin:
		// admins may remove regardless of status
	case model.RoleStudent:
		if actor.Email != appt.StudentEmail || appt.Status != model.AppointmentPending {
			return errors.ErrNotAllowed
		}
	default:
		return errors.ErrNotAllowed
	}

	if err := s.appts.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Notify(ctx, live.TopicAppointments)
	return nil
}

// List returns the actor's visible appointments, ordered by date then time
// (string comparison on the stored values).
func (s *appointmentService) List(ctx context.Context, actor *model.Account) ([]model.Appointment, error) {
	if actor == nil {
		return nil, errors.ErrNotAllowed
	}
	switch actor.Role {
	case model.RoleAdmin:
		return s.appts.ListAll(ctx)
	case model.RoleTeacher:
		return s.appts.ListByTeacherEmail(ctx, actor.Email)
	case model.RoleStudent:
		return s.appts.ListByStudentEmail(ctx, actor.Email)
	default:
		return nil, errors.ErrNotAllowed
	}
}

// ListPending returns the teacher's approval queue.
func (s *appointmentService) ListPending(ctx context.Context, actor *model.Account) ([]model.Appointment, error) {
	if actor == nil || actor.Role != model.RoleTeacher {
		return nil, errors.ErrNotAllowed
	}
	return s.appts.ListPendingByTeacherEmail(ctx, actor.Email)
}

// Teachers returns the teacher directory used by the booking form.
func (s *appointmentService) Teachers(ctx context.Context) ([]model.Account, error) {
	return s.accounts.ListByRole(ctx, model.RoleTeacher)
}
