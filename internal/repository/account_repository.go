package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolbook/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Account, error)
	ListPendingStudents(ctx context.Context) ([]model.Account, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds an account by email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByRole lists all accounts with the given role.
func (r *accountRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("name asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListPendingStudents lists student accounts awaiting approval.
func (r *accountRepository) ListPendingStudents(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).
		Where("role = ? AND status = ?", model.RoleStudent, model.StatusPendingApproval).
		Order("created_at asc").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpdateStatus sets the approval status of an account.
func (r *accountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete permanently removes an account, freeing its email for re-use.
// Not a soft delete.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Account{}).Error
}
