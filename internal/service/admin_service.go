package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolbook/internal/errors"
	"schoolbook/internal/identity"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

// AdminService covers account administration: teacher onboarding, profile
// upkeep, and the student approval queue. Every operation requires an admin
// actor.
type AdminService interface {
	AddTeacher(ctx context.Context, actor *model.Account, name, department, subject, email, password string) (*model.Account, error)
	UpdateTeacherProfile(ctx context.Context, actor *model.Account, id uuid.UUID, name, department, subject string) error
	DeleteAccount(ctx context.Context, actor *model.Account, id uuid.UUID) error
	ApproveStudent(ctx context.Context, actor *model.Account, id uuid.UUID) error
	RejectStudent(ctx context.Context, actor *model.Account, id uuid.UUID) error
	ListTeachers(ctx context.Context, actor *model.Account) ([]model.Account, error)
	ListPendingStudents(ctx context.Context, actor *model.Account) ([]model.Account, error)
	Seed(ctx context.Context, defaults []SeedAccount) (int, error)
}

// SeedAccount describes one account to create during seeding.
type SeedAccount struct {
	Name       string
	Email      string
	Password   string
	Role       model.Role
	Department string
	Subject    string
}

type adminService struct {
	accounts repository.AccountRepository
	idp      identity.Provider
}

// NewAdminService creates a new admin service.
func NewAdminService(accounts repository.AccountRepository, idp identity.Provider) AdminService {
	return &adminService{
		accounts: accounts,
		idp:      idp,
	}
}

func requireAdmin(actor *model.Account) error {
	if actor == nil || actor.Role != model.RoleAdmin {
		return errors.ErrNotAllowed
	}
	return nil
}

// AddTeacher creates a teacher identity and profile. Teachers created by an
// admin have no approval gate.
func (s *adminService) AddTeacher(ctx context.Context, actor *model.Account, name, department, subject, email, password string) (*model.Account, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if name == "" || department == "" || subject == "" || email == "" || password == "" {
		return nil, errors.ErrMissingField
	}

	if _, err := s.idp.SignUp(ctx, email, password); err != nil {
		return nil, err
	}

	account := &model.Account{
		Name:       name,
		Email:      email,
		Role:       model.RoleTeacher,
		Department: department,
		Subject:    subject,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		log.Printf("orphaned credential for %s: %v", email, err)
		return nil, fmt.Errorf("%w: %v", errors.ErrProfileWriteFailed, err)
	}
	return account, nil
}

// UpdateTeacherProfile overwrites a teacher's name, department and subject.
// Unconditional: last write wins, no concurrency check.
func (s *adminService) UpdateTeacherProfile(ctx context.Context, actor *model.Account, id uuid.UUID, name, department, subject string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if name == "" || department == "" || subject == "" {
		return errors.ErrMissingField
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	if account.Role != model.RoleTeacher {
		return errors.ErrNotFound
	}

	account.Name = name
	account.Department = department
	account.Subject = subject
	return s.accounts.Update(ctx, account)
}

// DeleteAccount removes an account and its credential. Irreversible.
func (s *adminService) DeleteAccount(ctx context.Context, actor *model.Account, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	return s.idp.DeleteByEmail(ctx, account.Email)
}

// ApproveStudent moves a pending student registration to Active.
func (s *adminService) ApproveStudent(ctx context.Context, actor *model.Account, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	if account.Role != model.RoleStudent || account.Status != model.StatusPendingApproval {
		return errors.ErrNotAllowed
	}

	return s.accounts.UpdateStatus(ctx, id, model.StatusActive)
}

// RejectStudent removes a pending student registration entirely. The record
// is deleted, not marked rejected.
func (s *adminService) RejectStudent(ctx context.Context, actor *model.Account, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	if account.Role != model.RoleStudent || account.Status != model.StatusPendingApproval {
		return errors.ErrNotAllowed
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	return s.idp.DeleteByEmail(ctx, account.Email)
}

// ListTeachers lists every teacher account.
func (s *adminService) ListTeachers(ctx context.Context, actor *model.Account) ([]model.Account, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.accounts.ListByRole(ctx, model.RoleTeacher)
}

// ListPendingStudents lists student registrations awaiting approval.
func (s *adminService) ListPendingStudents(ctx context.Context, actor *model.Account) ([]model.Account, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.accounts.ListPendingStudents(ctx)
}

// Seed creates the given accounts when they do not already exist and returns
// how many were created. This is the only path that creates admin accounts.
func (s *adminService) Seed(ctx context.Context, defaults []SeedAccount) (int, error) {
	created := 0
	for _, d := range defaults {
		if _, err := s.accounts.FindByEmail(ctx, d.Email); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return created, err
		}

		if _, err := s.idp.SignUp(ctx, d.Email, d.Password); err != nil && err != errors.ErrEmailTaken {
			return created, err
		}

		account := &model.Account{
			Name:       d.Name,
			Email:      d.Email,
			Role:       d.Role,
			Department: d.Department,
			Subject:    d.Subject,
		}
		if d.Role == model.RoleStudent {
			account.Status = model.StatusActive
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			return created, fmt.Errorf("%w: %v", errors.ErrProfileWriteFailed, err)
		}
		created++
	}
	return created, nil
}
