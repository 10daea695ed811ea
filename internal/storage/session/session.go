// Package session реализует единственный слот текущего пользователя.
//
// Слот хранит пользователя без дайджеста пароля под ключом "session".
// Чтение никогда не возвращает ошибку: отсутствующие или повреждённые
// данные трактуются как "никто не вошёл" и логируются.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/toonpulse/webtoon-platform/internal/kvstore"
	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
	"github.com/toonpulse/webtoon-platform/internal/models"
)

const sessionKey = "session"

// Store единственный слот сессии поверх kvstore.
type Store struct {
	kv  kvstore.Store
	log *slog.Logger
}

// New создает хранилище сессии.
func New(kv kvstore.Store, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Get возвращает текущего пользователя сессии или nil.
// Сбои чтения и повреждённый JSON деградируют до nil.
func (s *Store) Get(ctx context.Context) *models.User {
	raw, found, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		s.log.Warn("session read failed, treating as signed out", sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn("corrupt session record, treating as signed out",
			slog.String("key", sessionKey), sl.Err(err))
		return nil
	}
	return &user
}

// Set сохраняет пользователя в слот сессии; nil очищает слот.
func (s *Store) Set(ctx context.Context, user *models.User) error {
	const op = "session.Set"
	if user == nil {
		if err := s.kv.Delete(ctx, sessionKey); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
