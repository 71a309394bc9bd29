package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolbook/internal/model"
)

// appointmentOrder matches the original listing order: date then time,
// ascending, compared as strings. Not calendar-aware.
const appointmentOrder = "date asc, time asc"

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAll(ctx context.Context) ([]model.Appointment, error)
	ListByTeacherEmail(ctx context.Context, email string) ([]model.Appointment, error)
	ListPendingByTeacherEmail(ctx context.Context, email string) ([]model.Appointment, error)
	ListByStudentEmail(ctx context.Context, email string) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates a new appointment.
func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// FindByID finds an appointment by ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListAll lists every appointment.
func (r *appointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := r.db.WithContext(ctx).Order(appointmentOrder).Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

// ListByTeacherEmail lists appointments addressed to a teacher.
func (r *appointmentRepository) ListByTeacherEmail(ctx context.Context, email string) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := r.db.WithContext(ctx).
		Where("teacher_email = ?", email).
		Order(appointmentOrder).
		Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

// ListPendingByTeacherEmail lists a teacher's approval queue.
func (r *appointmentRepository) ListPendingByTeacherEmail(ctx context.Context, email string) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := r.db.WithContext(ctx).
		Where("teacher_email = ? AND status = ?", email, model.AppointmentPending).
		Order(appointmentOrder).
		Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

// ListByStudentEmail lists appointments requested by a student.
func (r *appointmentRepository) ListByStudentEmail(ctx context.Context, email string) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := r.db.WithContext(ctx).
		Where("student_email = ?", email).
		Order(appointmentOrder).
		Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

// UpdateStatus sets the approval status of an appointment.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete permanently removes an appointment. Not a soft delete.
func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Appointment{}).Error
}
