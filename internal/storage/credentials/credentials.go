// Package credentials реализует хранилище учётных данных пользователей
// поверх kvstore. Вся коллекция лежит одним значением под ключом "users"
// и при каждом изменении перезаписывается целиком.
//
// Повреждённые или недоступные данные на путях чтения деградируют до
// пустой коллекции: потеря локального состояния здесь не катастрофа,
// но каждый такой случай попадает в лог.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toonpulse/webtoon-platform/internal/kvstore"
	"github.com/toonpulse/webtoon-platform/internal/lib/password"
	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/storage/session"
)

const usersKey = "users"

// ErrDuplicateEmail возвращается при попытке регистрации на занятую почту.
var ErrDuplicateEmail = errors.New("email already registered")

// Store хранилище учётных данных.
type Store struct {
	kv       kvstore.Store
	sessions *session.Store
	scheme   password.Scheme
	log      *slog.Logger
}

// New создает хранилище учётных данных.
func New(kv kvstore.Store, sessions *session.Store, scheme password.Scheme, log *slog.Logger) *Store {
	return &Store{
		kv:       kv,
		sessions: sessions,
		scheme:   scheme,
		log:      log,
	}
}

// GetAll возвращает все учётные записи в порядке сохранения.
// Отсутствующее или повреждённое значение даёт пустую коллекцию.
func (s *Store) GetAll(ctx context.Context) []models.Credential {
	raw, found, err := s.kv.Get(ctx, usersKey)
	if err != nil {
		s.log.Warn("credentials read failed, treating as empty", sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	var all []models.Credential
	if err := json.Unmarshal(raw, &all); err != nil {
		s.log.Warn("corrupt credentials collection, treating as empty",
			slog.String("key", usersKey), sl.Err(err))
		return nil
	}
	return all
}

// Save перезаписывает всю коллекцию учётных записей.
func (s *Store) Save(ctx context.Context, all []models.Credential) error {
	const op = "credentials.Save"
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindByEmail возвращает первую учётную запись с совпадающей почтой
// без учёта регистра, либо nil.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.Credential, error) {
	for _, cred := range s.GetAll(ctx) {
		if strings.EqualFold(cred.Email, email) {
			return &cred, nil
		}
	}
	return nil, nil
}

// Create регистрирует нового пользователя. Почта проверяется на уникальность
// без учёта регистра; нарушение даёт ErrDuplicateEmail. Возвращаемая запись
// содержит дайджест — вызывающий обязан отдать наружу только Sanitized().
func (s *Store) Create(ctx context.Context, name, email, rawPassword string, role models.Role) (*models.Credential, error) {
	const op = "credentials.Create"

	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	digest, err := password.Digest(rawPassword, s.scheme)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cred := models.Credential{
		User: models.User{
			UID:       uuid.New().String(),
			Name:      name,
			Email:     email,
			Role:      role,
			AvatarURL: avatarFor(name),
			CreatedAt: time.Now().UTC(),
		},
		PasswordDigest: digest,
	}

	all := append(s.GetAll(ctx), cred)
	if err := s.Save(ctx, all); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cred, nil
}

// Update сливает переданные поля в запись с данным uid и сохраняет коллекцию.
// Если записи нет, возвращает nil без ошибки. Если обновлённая запись
// совпадает с пользователем активной сессии, слот сессии обновляется.
func (s *Store) Update(ctx context.Context, uid string, upd models.ProfileUpdate) (*models.User, error) {
	const op = "credentials.Update"

	all := s.GetAll(ctx)
	idx := -1
	for i, cred := range all {
		if cred.UID == uid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	if upd.Name != nil {
		all[idx].Name = *upd.Name
	}
	if upd.Email != nil {
		all[idx].Email = *upd.Email
	}
	if upd.AvatarURL != nil {
		all[idx].AvatarURL = *upd.AvatarURL
	}
	if upd.LastLoginAt != nil {
		all[idx].LastLoginAt = upd.LastLoginAt
	}

	if err := s.Save(ctx, all); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := all[idx].Sanitized()
	if cur := s.sessions.Get(ctx); cur != nil && cur.UID == uid {
		if err := s.sessions.Set(ctx, &updated); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &updated, nil
}

// Delete удаляет запись и сообщает, была ли она найдена.
// Активная сессия, ссылавшаяся на этот uid, очищается.
func (s *Store) Delete(ctx context.Context, uid string) (bool, error) {
	const op = "credentials.Delete"

	all := s.GetAll(ctx)
	kept := all[:0]
	removed := false
	for _, cred := range all {
		if cred.UID == uid {
			removed = true
			continue
		}
		kept = append(kept, cred)
	}
	if !removed {
		return false, nil
	}

	if err := s.Save(ctx, kept); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if cur := s.sessions.Get(ctx); cur != nil && cur.UID == uid {
		if err := s.sessions.Set(ctx, nil); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}
	return true, nil
}

// avatarFor строит ссылку на аватар-заглушку по первому символу имени.
func avatarFor(name string) string {
	initial := "?"
	for _, r := range strings.TrimSpace(name) {
		initial = strings.ToUpper(string(r))
		break
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(initial)
}
