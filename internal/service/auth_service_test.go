package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"schoolbook/internal/auth"
	"schoolbook/internal/errors"
	"schoolbook/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountRepository) ListPendingStudents(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of identity.Provider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, identityID string) error {
	args := m.Called(ctx, identityID)
	return args.Error(0)
}

func (m *MockIdentityProvider) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockIdentityProvider) ListEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSessionStore is a mock implementation of auth.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, tokenID string, acct *model.Account, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, acct, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Resolve(ctx context.Context, tokenID string) (*model.Account, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockSessionStore) Destroy(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		accountName   string
		email         string
		password      string
		role          model.Role
		setupMock     func(*MockAccountRepository, *MockIdentityProvider)
		expectedError error
		checkAccount  func(*testing.T, *model.Account)
	}{
		{
			name:        "student starts pending",
			accountName: "Sam Student",
			email:       "sam@example.com",
			password:    "password123",
			role:        model.RoleStudent,
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider) {
				mIdp.On("SignUp", mock.Anything, "sam@example.com", "password123").Return(uuid.NewString(), nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
			},
			checkAccount: func(t *testing.T, acct *model.Account) {
				assert.Equal(t, model.RoleStudent, acct.Role)
				assert.Equal(t, model.StatusPendingApproval, acct.Status)
			},
		},
		{
			name:        "teacher gets placeholder profile fields",
			accountName: "Tina Teacher",
			email:       "tina@example.com",
			password:    "password123",
			role:        model.RoleTeacher,
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider) {
				mIdp.On("SignUp", mock.Anything, "tina@example.com", "password123").Return(uuid.NewString(), nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
			},
			checkAccount: func(t *testing.T, acct *model.Account) {
				assert.Equal(t, "N/A", acct.Department)
				assert.Equal(t, "N/A", acct.Subject)
			},
		},
		{
			name:          "missing email writes nothing",
			accountName:   "Sam Student",
			email:         "",
			password:      "password123",
			role:          model.RoleStudent,
			setupMock:     func(*MockAccountRepository, *MockIdentityProvider) {},
			expectedError: errors.ErrMissingField,
		},
		{
			name:          "admin self-registration refused",
			accountName:   "Eve",
			email:         "eve@example.com",
			password:      "password123",
			role:          model.RoleAdmin,
			setupMock:     func(*MockAccountRepository, *MockIdentityProvider) {},
			expectedError: errors.ErrNotAllowed,
		},
		{
			name:        "email already taken",
			accountName: "Sam Student",
			email:       "sam@example.com",
			password:    "password123",
			role:        model.RoleStudent,
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider) {
				mIdp.On("SignUp", mock.Anything, "sam@example.com", "password123").Return("", errors.ErrEmailTaken)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:        "profile write failure leaves orphaned credential",
			accountName: "Sam Student",
			email:       "sam@example.com",
			password:    "password123",
			role:        model.RoleStudent,
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider) {
				mIdp.On("SignUp", mock.Anything, "sam@example.com", "password123").Return(uuid.NewString(), nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(assert.AnError)
			},
			expectedError: errors.ErrProfileWriteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			mockIdp := new(MockIdentityProvider)
			tt.setupMock(mockRepo, mockIdp)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, mockIdp, jwtService, new(MockSessionStore))

			account, err := service.Register(context.Background(), tt.accountName, tt.email, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, account)
				assert.Equal(t, tt.email, account.Email)
				if tt.checkAccount != nil {
					tt.checkAccount(t, account)
				}
			}

			mockRepo.AssertExpectations(t)
			mockIdp.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	identityID := uuid.NewString()
	account := &model.Account{
		ID:     uuid.New(),
		Name:   "Sam Student",
		Email:  "sam@example.com",
		Role:   model.RoleStudent,
		Status: model.StatusActive,
	}

	tests := []struct {
		name          string
		setupMock     func(*MockAccountRepository, *MockIdentityProvider, *MockSessionStore)
		expectedError error
	}{
		{
			name: "successful login stores a session snapshot",
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider, mSess *MockSessionStore) {
				mIdp.On("SignIn", mock.Anything, "sam@example.com", "password123").Return(identityID, nil)
				mRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(account, nil)
				mSess.On("Save", mock.Anything, mock.AnythingOfType("string"), account, auth.SessionTokenExpiry).Return(nil)
			},
		},
		{
			name: "wrong password",
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider, mSess *MockSessionStore) {
				mIdp.On("SignIn", mock.Anything, "sam@example.com", "password123").Return("", errors.ErrInvalidCredentials)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name: "identity without profile is signed out",
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider, mSess *MockSessionStore) {
				mIdp.On("SignIn", mock.Anything, "sam@example.com", "password123").Return(identityID, nil)
				mRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, gorm.ErrRecordNotFound)
				mIdp.On("SignOut", mock.Anything, identityID).Return(nil)
			},
			expectedError: errors.ErrAccountRecordMissing,
		},
		{
			name: "profile with unknown role is signed out",
			setupMock: func(mRepo *MockAccountRepository, mIdp *MockIdentityProvider, mSess *MockSessionStore) {
				mIdp.On("SignIn", mock.Anything, "sam@example.com", "password123").Return(identityID, nil)
				mRepo.On("FindByEmail", mock.Anything, "sam@example.com").Return(&model.Account{
					ID:    uuid.New(),
					Email: "sam@example.com",
					Role:  "Janitor",
				}, nil)
				mIdp.On("SignOut", mock.Anything, identityID).Return(nil)
			},
			expectedError: errors.ErrAccountRecordMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			mockIdp := new(MockIdentityProvider)
			mockSess := new(MockSessionStore)
			tt.setupMock(mockRepo, mockIdp, mockSess)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, mockIdp, jwtService, mockSess)

			token, acct, err := service.Authenticate(context.Background(), "sam@example.com", "password123")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, acct)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, account, acct)
			}

			mockRepo.AssertExpectations(t)
			mockIdp.AssertExpectations(t)
			mockSess.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveSession(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	account := &model.Account{ID: uuid.New(), Email: "sam@example.com", Role: model.RoleStudent}

	t.Run("live session resolves to the stored snapshot", func(t *testing.T) {
		tokenID, token, err := jwtService.GenerateSessionToken(account.ID.String(), uuid.NewString(), account.Email, string(account.Role))
		assert.NoError(t, err)

		mockSess := new(MockSessionStore)
		mockSess.On("Resolve", mock.Anything, tokenID).Return(account, nil)

		service := NewAuthService(new(MockAccountRepository), new(MockIdentityProvider), jwtService, mockSess)
		sess, err := service.ResolveSession(context.Background(), token)
		assert.NoError(t, err)
		assert.NotNil(t, sess)
		assert.Equal(t, account, sess.Actor())
		mockSess.AssertExpectations(t)
	})

	t.Run("garbage token resolves to no session", func(t *testing.T) {
		service := NewAuthService(new(MockAccountRepository), new(MockIdentityProvider), jwtService, new(MockSessionStore))
		sess, err := service.ResolveSession(context.Background(), "not-a-token")
		assert.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("logged-out session resolves to no session", func(t *testing.T) {
		tokenID, token, err := jwtService.GenerateSessionToken(account.ID.String(), uuid.NewString(), account.Email, string(account.Role))
		assert.NoError(t, err)

		mockSess := new(MockSessionStore)
		mockSess.On("Resolve", mock.Anything, tokenID).Return(nil, nil)

		service := NewAuthService(new(MockAccountRepository), new(MockIdentityProvider), jwtService, mockSess)
		sess, err := service.ResolveSession(context.Background(), token)
		assert.NoError(t, err)
		assert.Nil(t, sess)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	accountID := uuid.NewString()
	identityID := uuid.NewString()

	t.Run("destroys the local session then signs the identity out", func(t *testing.T) {
		tokenID, token, err := jwtService.GenerateSessionToken(accountID, identityID, "sam@example.com", "Student")
		assert.NoError(t, err)

		mockSess := new(MockSessionStore)
		mockSess.On("Destroy", mock.Anything, tokenID).Return(nil)
		mockIdp := new(MockIdentityProvider)
		mockIdp.On("SignOut", mock.Anything, identityID).Return(nil)

		service := NewAuthService(new(MockAccountRepository), mockIdp, jwtService, mockSess)
		assert.NoError(t, service.Logout(context.Background(), token))
		mockSess.AssertExpectations(t)
		mockIdp.AssertExpectations(t)
	})

	t.Run("signs out the credential from login, not the account", func(t *testing.T) {
		// full round trip: the provider mints a credential ID distinct from the
		// account ID, and logout must hand that credential ID back to SignOut
		account := &model.Account{
			ID:     uuid.New(),
			Email:  "sam@example.com",
			Role:   model.RoleStudent,
			Status: model.StatusActive,
		}
		credentialID := uuid.NewString()

		mockRepo := new(MockAccountRepository)
		mockRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
		mockSess := new(MockSessionStore)
		mockSess.On("Save", mock.Anything, mock.AnythingOfType("string"), account, auth.SessionTokenExpiry).Return(nil)
		mockSess.On("Destroy", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		var signedOut string
		mockIdp := new(MockIdentityProvider)
		mockIdp.On("SignIn", mock.Anything, account.Email, "password123").Return(credentialID, nil)
		mockIdp.On("SignOut", mock.Anything, mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
			signedOut = args.String(1)
		}).Return(nil)

		service := NewAuthService(mockRepo, mockIdp, jwtService, mockSess)
		token, _, err := service.Authenticate(context.Background(), account.Email, "password123")
		assert.NoError(t, err)
		assert.NoError(t, service.Logout(context.Background(), token))

		assert.Equal(t, credentialID, signedOut)
		assert.NotEqual(t, account.ID.String(), signedOut)
		mockIdp.AssertExpectations(t)
	})

	t.Run("local session is cleared even when the provider fails", func(t *testing.T) {
		tokenID, token, err := jwtService.GenerateSessionToken(accountID, identityID, "sam@example.com", "Student")
		assert.NoError(t, err)

		mockSess := new(MockSessionStore)
		mockSess.On("Destroy", mock.Anything, tokenID).Return(nil)
		mockIdp := new(MockIdentityProvider)
		mockIdp.On("SignOut", mock.Anything, identityID).Return(assert.AnError)

		service := NewAuthService(new(MockAccountRepository), mockIdp, jwtService, mockSess)
		err = service.Logout(context.Background(), token)
		assert.Error(t, err)
		mockSess.AssertExpectations(t)
	})

	t.Run("garbage token is a no-op", func(t *testing.T) {
		service := NewAuthService(new(MockAccountRepository), new(MockIdentityProvider), jwtService, new(MockSessionStore))
		assert.NoError(t, service.Logout(context.Background(), "not-a-token"))
	})
}
