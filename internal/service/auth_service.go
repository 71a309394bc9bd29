package service

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"schoolbook/internal/auth"
	"schoolbook/internal/errors"
	"schoolbook/internal/identity"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
	"schoolbook/internal/session"
)

// AuthService handles authentication and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.Account, error)
	Authenticate(ctx context.Context, email, password string) (token string, account *model.Account, err error)
	ResolveSession(ctx context.Context, token string) (*session.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	accounts repository.AccountRepository
	idp      identity.Provider
	jwt      *auth.JWTService
	sessions auth.SessionStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts repository.AccountRepository, idp identity.Provider, jwt *auth.JWTService, sessions auth.SessionStore) AuthService {
	return &authService{
		accounts: accounts,
		idp:      idp,
		jwt:      jwt,
		sessions: sessions,
	}
}

// Register creates an identity and its account profile. Self-registration is
// open to teachers and students only; admins are seeded out-of-band.
// Students start Pending and need admin approval. No session is created:
// the caller signs in afterwards.
//
// The two writes are not transactional. If the profile write fails the
// credential stays behind; ErrProfileWriteFailed marks the condition and the
// seed command's reconcile pass cleans such orphans up.
func (s *authService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.Account, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return nil, errors.ErrMissingField
	}
	if role != model.RoleTeacher && role != model.RoleStudent {
		return nil, errors.ErrNotAllowed
	}

	if _, err := s.idp.SignUp(ctx, email, password); err != nil {
		return nil, err
	}

	account := &model.Account{
		Name:  name,
		Email: email,
		Role:  role,
	}
	switch role {
	case model.RoleStudent:
		account.Status = model.StatusPendingApproval
	case model.RoleTeacher:
		// self-registered teachers get placeholder profile fields until an
		// admin fills them in
		account.Department = "N/A"
		account.Subject = "N/A"
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		log.Printf("orphaned credential for %s: %v", email, err)
		return nil, fmt.Errorf("%w: %v", errors.ErrProfileWriteFailed, err)
	}
	return account, nil
}

// Authenticate exchanges credentials for a session token and stores the
// account snapshot for the session's lifetime. An identity without an
// account profile is a fatal inconsistency: the identity is signed out and
// no session is created.
func (s *authService) Authenticate(ctx context.Context, email, password string) (string, *model.Account, error) {
	identityID, err := s.idp.SignIn(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			if soErr := s.idp.SignOut(ctx, identityID); soErr != nil {
				log.Printf("sign-out after missing profile failed: %v", soErr)
			}
			return "", nil, errors.ErrAccountRecordMissing
		}
		return "", nil, err
	}
	if !account.Role.Valid() {
		if soErr := s.idp.SignOut(ctx, identityID); soErr != nil {
			log.Printf("sign-out after unknown role failed: %v", soErr)
		}
		return "", nil, errors.ErrAccountRecordMissing
	}

	tokenID, token, err := s.jwt.GenerateSessionToken(account.ID.String(), identityID, account.Email, string(account.Role))
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	if err := s.sessions.Save(ctx, tokenID, account, auth.SessionTokenExpiry); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	return token, account, nil
}

// ResolveSession reads the persisted session snapshot for a token. Returns
// (nil, nil) when there is no live session. Never touches the primary store.
func (s *authService) ResolveSession(ctx context.Context, token string) (*session.Session, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, nil
	}
	account, err := s.sessions.Resolve(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return &session.Session{Account: account}, nil
}

// Logout destroys the local session first, then invalidates the identity.
// The local session is always cleared, even when the identity provider
// call fails; that failure is surfaced but cannot lock the actor in.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		// nothing resolvable to clear
		return nil
	}
	if err := s.sessions.Destroy(ctx, claims.ID); err != nil {
		log.Printf("destroy session %s: %v", claims.ID, err)
	}
	if err := s.idp.SignOut(ctx, claims.IdentityID); err != nil {
		return err
	}
	return nil
}
