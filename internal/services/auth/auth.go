// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/toonpulse/webtoon-platform/internal/lib/password"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/notify"
)

// Ошибки уровня аутентификации, различимые вызывающей стороной.
var (
	// ErrInvalidCredentials неизвестная почта или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoActiveSession операция требует активной сессии.
	ErrNoActiveSession = errors.New("no active session")
)

// CredentialRepository описывает контракт хранилища учётных данных.
type CredentialRepository interface {
	// FindByEmail возвращает учётную запись по почте без учёта регистра, либо nil.
	FindByEmail(ctx context.Context, email string) (*models.Credential, error)
	// Create регистрирует нового пользователя или возвращает ошибку занятой почты.
	Create(ctx context.Context, name, email, rawPassword string, role models.Role) (*models.Credential, error)
	// Update сливает частичные поля в запись; nil без ошибки, если записи нет.
	Update(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.User, error)
	// Delete удаляет запись и сообщает, была ли она найдена.
	Delete(ctx context.Context, uid string) (bool, error)
}

// SessionRepository описывает контракт слота текущей сессии.
type SessionRepository interface {
	// Get возвращает пользователя активной сессии или nil.
	Get(ctx context.Context) *models.User
	// Set сохраняет пользователя в слот; nil очищает слот.
	Set(ctx context.Context, user *models.User) error
}

// Service отвечает за регистрацию, вход, выход и управление профилем.
// Наружу никогда не отдаёт дайджест пароля.
type Service struct {
	creds    CredentialRepository
	sessions SessionRepository
	notifier notify.Notifier
	log      *slog.Logger
}

// New создает новый экземпляр Service. Notifier может быть nil —
// тогда уведомления не отправляются, на исход операций это не влияет.
func New(creds CredentialRepository, sessions SessionRepository, notifier notify.Notifier, log *slog.Logger) *Service {
	return &Service{
		creds:    creds,
		sessions: sessions,
		notifier: notifier,
		log:      log,
	}
}

// SignIn проверяет пароль пользователя, обновляет дату последнего входа
// и записывает пользователя в слот сессии.
func (s *Service) SignIn(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "auth.SignIn"

	cred, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cred == nil || password.Verify(rawPassword, cred.PasswordDigest) != nil {
		s.notify(ctx, notify.Notification{
			Title:       "Sign in failed",
			Description: "Invalid email or password.",
			Variant:     notify.VariantError,
		})
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user, err := s.creds.Update(ctx, cred.UID, models.ProfileUpdate{LastLoginAt: &now})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sessions.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user signed in", slog.String("uid", user.UID))
	s.notify(ctx, notify.Notification{
		Title:       "Welcome back",
		Description: fmt.Sprintf("Signed in as %s.", user.Name),
		Variant:     notify.VariantSuccess,
	})
	return user, nil
}

// SignUp регистрирует пользователя и сразу открывает сессию.
// Пустая роль трактуется как reader.
func (s *Service) SignUp(ctx context.Context, email, rawPassword, name string, role models.Role) (*models.User, error) {
	const op = "auth.SignUp"

	if role == "" {
		role = models.RoleReader
	}

	cred, err := s.creds.Create(ctx, name, email, rawPassword, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := cred.Sanitized()
	if err := s.sessions.Set(ctx, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user signed up", slog.String("uid", user.UID), slog.String("role", string(user.Role)))
	s.notify(ctx, notify.Notification{
		Title:       "Account created",
		Description: fmt.Sprintf("Welcome to the platform, %s!", user.Name),
		Variant:     notify.VariantSuccess,
	})
	return &user, nil
}

// SignOut очищает слот сессии. Переход на главную страницу — забота
// вызывающего слоя, а не ядра.
func (s *Service) SignOut(ctx context.Context) error {
	const op = "auth.SignOut"
	if err := s.sessions.Set(ctx, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notify(ctx, notify.Notification{
		Title:       "Signed out",
		Description: "See you soon.",
		Variant:     notify.VariantSuccess,
	})
	return nil
}

// CurrentUser возвращает пользователя активной сессии или nil.
func (s *Service) CurrentUser(ctx context.Context) *models.User {
	return s.sessions.Get(ctx)
}

// UpdateProfile сливает частичные поля в профиль пользователя активной сессии.
// Без активной сессии возвращает ErrNoActiveSession.
func (s *Service) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	const op = "auth.UpdateProfile"

	cur := s.sessions.Get(ctx)
	if cur == nil {
		return nil, ErrNoActiveSession
	}

	user, err := s.creds.Update(ctx, cur.UID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		// Учётная запись исчезла из-под активной сессии.
		return nil, ErrNoActiveSession
	}
	return user, nil
}

// DeleteUser удаляет учётную запись и сообщает, была ли она найдена.
// Сессия, ссылавшаяся на неё, очищается хранилищем.
func (s *Service) DeleteUser(ctx context.Context, uid string) (bool, error) {
	const op = "auth.DeleteUser"
	removed, err := s.creds.Delete(ctx, uid)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if removed {
		s.log.Info("user deleted", slog.String("uid", uid))
	}
	return removed, nil
}

func (s *Service) notify(ctx context.Context, n notify.Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}
