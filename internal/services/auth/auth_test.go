package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/toonpulse/webtoon-platform/internal/lib/password"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/notify"
	"github.com/toonpulse/webtoon-platform/internal/services/auth"
	"github.com/toonpulse/webtoon-platform/internal/storage/credentials"
)

// Мок для CredentialRepository
type CredRepoMock struct {
	mock.Mock
}

func (m *CredRepoMock) FindByEmail(ctx context.Context, email string) (*models.Credential, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *CredRepoMock) Create(ctx context.Context, name, email, rawPassword string, role models.Role) (*models.Credential, error) {
	args := m.Called(ctx, name, email, rawPassword, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *CredRepoMock) Update(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, uid, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *CredRepoMock) Delete(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

// Мок для SessionRepository
type SessionRepoMock struct {
	mock.Mock
}

func (m *SessionRepoMock) Get(ctx context.Context) *models.User {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.User)
}

func (m *SessionRepoMock) Set(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Мок для Notifier, собирает отправленные уведомления.
type NotifierMock struct {
	sent []notify.Notification
}

func (n *NotifierMock) Notify(_ context.Context, note notify.Notification) {
	n.sent = append(n.sent, note)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testCredential(t *testing.T) *models.Credential {
	t.Helper()
	digest, err := password.Digest("secret1", password.SchemeLegacy)
	require.NoError(t, err)
	return &models.Credential{
		User: models.User{
			UID:   "uid-1",
			Name:  "Ann",
			Email: "ann@x.com",
			Role:  models.RoleReader,
		},
		PasswordDigest: digest,
	}
}

func TestService_SignIn(t *testing.T) {
	cred := testCredential(t)
	cleanUser := cred.Sanitized()

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(c *CredRepoMock, s *SessionRepoMock)
		wantErr    error
	}{
		{
			name:     "successful sign in",
			email:    "ann@x.com",
			password: "secret1",
			setupMocks: func(c *CredRepoMock, s *SessionRepoMock) {
				c.On("FindByEmail", mock.Anything, "ann@x.com").Return(cred, nil).Once()
				c.On("Update", mock.Anything, "uid-1", mock.MatchedBy(func(upd models.ProfileUpdate) bool {
					return upd.LastLoginAt != nil
				})).Return(&cleanUser, nil).Once()
				s.On("Set", mock.Anything, &cleanUser).Return(nil).Once()
			},
		},
		{
			name:     "unknown email",
			email:    "ghost@x.com",
			password: "secret1",
			setupMocks: func(c *CredRepoMock, _ *SessionRepoMock) {
				c.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "ann@x.com",
			password: "wrong",
			setupMocks: func(c *CredRepoMock, _ *SessionRepoMock) {
				c.On("FindByEmail", mock.Anything, "ann@x.com").Return(cred, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := new(CredRepoMock)
			sessions := new(SessionRepoMock)
			notifier := &NotifierMock{}
			svc := auth.New(creds, sessions, notifier, newNoopLogger())

			tt.setupMocks(creds, sessions)

			user, err := svc.SignIn(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				require.Len(t, notifier.sent, 1)
				assert.Equal(t, notify.VariantError, notifier.sent[0].Variant)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "uid-1", user.UID)
				assert.Equal(t, models.RoleReader, user.Role)
				require.Len(t, notifier.sent, 1)
				assert.Equal(t, notify.VariantSuccess, notifier.sent[0].Variant)
			}

			creds.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestService_SignIn_NeverExposesDigest(t *testing.T) {
	cred := testCredential(t)
	cleanUser := cred.Sanitized()

	creds := new(CredRepoMock)
	sessions := new(SessionRepoMock)
	creds.On("FindByEmail", mock.Anything, "ann@x.com").Return(cred, nil).Once()
	creds.On("Update", mock.Anything, "uid-1", mock.Anything).Return(&cleanUser, nil).Once()
	sessions.On("Set", mock.Anything, &cleanUser).Return(nil).Once()

	svc := auth.New(creds, sessions, nil, newNoopLogger())
	user, err := svc.SignIn(context.Background(), "ann@x.com", "secret1")
	require.NoError(t, err)

	// Возвращаемый тип по построению не содержит дайджеста.
	var _ models.User = *user
}

func TestService_SignUp(t *testing.T) {
	cred := testCredential(t)

	tests := []struct {
		name       string
		role       models.Role
		setupMocks func(c *CredRepoMock, s *SessionRepoMock)
		wantErr    error
		wantRole   models.Role
	}{
		{
			name: "default role is reader",
			role: "",
			setupMocks: func(c *CredRepoMock, s *SessionRepoMock) {
				c.On("Create", mock.Anything, "Ann", "ann@x.com", "secret1", models.RoleReader).
					Return(cred, nil).Once()
				s.On("Set", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantRole: models.RoleReader,
		},
		{
			name: "explicit creator role",
			role: models.RoleCreator,
			setupMocks: func(c *CredRepoMock, s *SessionRepoMock) {
				creatorCred := *cred
				creatorCred.Role = models.RoleCreator
				c.On("Create", mock.Anything, "Ann", "ann@x.com", "secret1", models.RoleCreator).
					Return(&creatorCred, nil).Once()
				s.On("Set", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantRole: models.RoleCreator,
		},
		{
			name: "duplicate email propagated",
			role: "",
			setupMocks: func(c *CredRepoMock, _ *SessionRepoMock) {
				c.On("Create", mock.Anything, "Ann", "ann@x.com", "secret1", models.RoleReader).
					Return(nil, credentials.ErrDuplicateEmail).Once()
			},
			wantErr: credentials.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := new(CredRepoMock)
			sessions := new(SessionRepoMock)
			svc := auth.New(creds, sessions, nil, newNoopLogger())

			tt.setupMocks(creds, sessions)

			user, err := svc.SignUp(context.Background(), "ann@x.com", "secret1", "Ann", tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantRole, user.Role)
			}

			creds.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestService_SignOut(t *testing.T) {
	creds := new(CredRepoMock)
	sessions := new(SessionRepoMock)
	sessions.On("Set", mock.Anything, (*models.User)(nil)).Return(nil).Once()

	svc := auth.New(creds, sessions, nil, newNoopLogger())
	require.NoError(t, svc.SignOut(context.Background()))
	sessions.AssertExpectations(t)
}

func TestService_UpdateProfile(t *testing.T) {
	newName := "Annie"

	t.Run("no active session", func(t *testing.T) {
		creds := new(CredRepoMock)
		sessions := new(SessionRepoMock)
		sessions.On("Get", mock.Anything).Return(nil).Once()

		svc := auth.New(creds, sessions, nil, newNoopLogger())
		_, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Name: &newName})
		assert.ErrorIs(t, err, auth.ErrNoActiveSession)
	})

	t.Run("merges into signed-in user", func(t *testing.T) {
		cur := &models.User{UID: "uid-1", Name: "Ann"}
		updated := &models.User{UID: "uid-1", Name: "Annie"}

		creds := new(CredRepoMock)
		sessions := new(SessionRepoMock)
		sessions.On("Get", mock.Anything).Return(cur).Once()
		creds.On("Update", mock.Anything, "uid-1", mock.MatchedBy(func(upd models.ProfileUpdate) bool {
			return upd.Name != nil && *upd.Name == "Annie"
		})).Return(updated, nil).Once()

		svc := auth.New(creds, sessions, nil, newNoopLogger())
		got, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Annie", got.Name)

		creds.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("account vanished under session", func(t *testing.T) {
		creds := new(CredRepoMock)
		sessions := new(SessionRepoMock)
		sessions.On("Get", mock.Anything).Return(&models.User{UID: "uid-1"}).Once()
		creds.On("Update", mock.Anything, "uid-1", mock.Anything).Return(nil, nil).Once()

		svc := auth.New(creds, sessions, nil, newNoopLogger())
		_, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Name: &newName})
		assert.ErrorIs(t, err, auth.ErrNoActiveSession)
	})
}

func TestService_DeleteUser(t *testing.T) {
	creds := new(CredRepoMock)
	sessions := new(SessionRepoMock)
	creds.On("Delete", mock.Anything, "uid-1").Return(true, nil).Once()
	creds.On("Delete", mock.Anything, "ghost").Return(false, nil).Once()

	svc := auth.New(creds, sessions, nil, newNoopLogger())

	removed, err := svc.DeleteUser(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.DeleteUser(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, removed)

	creds.AssertExpectations(t)
}

func TestService_SignUpFailure_RepoError(t *testing.T) {
	creds := new(CredRepoMock)
	sessions := new(SessionRepoMock)
	creds.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("storage down")).Once()

	svc := auth.New(creds, sessions, nil, newNoopLogger())
	_, err := svc.SignUp(context.Background(), "ann@x.com", "secret1", "Ann", models.RoleReader)
	assert.ErrorContains(t, err, "storage down")
}
