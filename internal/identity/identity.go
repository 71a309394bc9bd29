package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "schoolbook/internal/errors"
)

const bcryptCost = 10

// Credential is an identity record: email plus password hash, nothing else.
// Account profiles live in their own table; the two are linked by email only,
// so an identity can exist without a profile (and must be reconcilable).
type Credential struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate sets UUID before creating the record.
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Provider is the identity capability: credential exchange only.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, identityID string) error
	DeleteByEmail(ctx context.Context, email string) error
	ListEmails(ctx context.Context) ([]string, error)
}

type gormProvider struct {
	db *gorm.DB
}

// NewProvider creates a database-backed identity provider.
func NewProvider(db *gorm.DB) Provider {
	return &gormProvider{db: db}
}

// SignUp creates a new identity and returns its ID.
func (p *gormProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	var existing Credential
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", apperrors.ErrEmailTaken
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	cred := &Credential{Email: email, PasswordHash: string(hash)}
	if err := p.db.WithContext(ctx).Create(cred).Error; err != nil {
		return "", err
	}
	return cred.ID.String(), nil
}

// SignIn exchanges credentials for an identity ID.
func (p *gormProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	var cred Credential
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	return cred.ID.String(), nil
}

// SignOut invalidates the remote side of an identity session. The
// database-backed provider holds no per-session state, so this only verifies
// the identity still exists.
func (p *gormProvider) SignOut(ctx context.Context, identityID string) error {
	var cred Credential
	if err := p.db.WithContext(ctx).Where("id = ?", identityID).First(&cred).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteByEmail removes an identity for good.
func (p *gormProvider) DeleteByEmail(ctx context.Context, email string) error {
	return p.db.WithContext(ctx).Where("email = ?", email).Delete(&Credential{}).Error
}

// ListEmails returns every registered identity email. Used by the reconcile
// pass to find credentials orphaned by a failed profile write.
func (p *gormProvider) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	if err := p.db.WithContext(ctx).Model(&Credential{}).Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}
