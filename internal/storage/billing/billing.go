// Package billing реализует хранилище платёжных данных поверх kvstore.
// Каждая коллекция пользователя (методы, транзакции, подписки) лежит
// отдельным значением под ключом вида "<коллекция>:<uid>" и при изменении
// перезаписывается целиком.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/toonpulse/webtoon-platform/internal/kvstore"
	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
	"github.com/toonpulse/webtoon-platform/internal/models"
)

// Store хранилище платёжных коллекций.
type Store struct {
	kv  kvstore.Store
	log *slog.Logger
}

// New создает хранилище платёжных данных.
func New(kv kvstore.Store, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

func methodsKey(userUID string) string       { return "payment_methods:" + userUID }
func transactionsKey(userUID string) string  { return "transactions:" + userUID }
func subscriptionsKey(userUID string) string { return "subscriptions:" + userUID }

// Methods возвращает платёжные методы пользователя в порядке сохранения.
// Неизвестный пользователь или повреждённые данные дают пустую коллекцию.
func (s *Store) Methods(ctx context.Context, userUID string) []models.PaymentMethod {
	raw := s.read(ctx, methodsKey(userUID))
	if raw == nil {
		return nil
	}
	var list []models.PaymentMethod
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn("corrupt billing collection, treating as empty",
			slog.String("key", methodsKey(userUID)), sl.Err(err))
		return nil
	}
	return list
}

// SaveMethods перезаписывает коллекцию платёжных методов пользователя.
func (s *Store) SaveMethods(ctx context.Context, userUID string, list []models.PaymentMethod) error {
	return s.write(ctx, "billing.SaveMethods", methodsKey(userUID), list)
}

// Transactions возвращает транзакции пользователя в порядке сохранения.
func (s *Store) Transactions(ctx context.Context, userUID string) []models.Transaction {
	raw := s.read(ctx, transactionsKey(userUID))
	if raw == nil {
		return nil
	}
	var list []models.Transaction
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn("corrupt billing collection, treating as empty",
			slog.String("key", transactionsKey(userUID)), sl.Err(err))
		return nil
	}
	return list
}

// SaveTransactions перезаписывает коллекцию транзакций пользователя.
func (s *Store) SaveTransactions(ctx context.Context, userUID string, list []models.Transaction) error {
	return s.write(ctx, "billing.SaveTransactions", transactionsKey(userUID), list)
}

// Subscriptions возвращает подписки пользователя в порядке сохранения.
func (s *Store) Subscriptions(ctx context.Context, userUID string) []models.Subscription {
	raw := s.read(ctx, subscriptionsKey(userUID))
	if raw == nil {
		return nil
	}
	var list []models.Subscription
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn("corrupt billing collection, treating as empty",
			slog.String("key", subscriptionsKey(userUID)), sl.Err(err))
		return nil
	}
	return list
}

// SaveSubscriptions перезаписывает коллекцию подписок пользователя.
func (s *Store) SaveSubscriptions(ctx context.Context, userUID string, list []models.Subscription) error {
	return s.write(ctx, "billing.SaveSubscriptions", subscriptionsKey(userUID), list)
}

// read возвращает сырое значение ключа; сбои чтения деградируют до nil.
func (s *Store) read(ctx context.Context, key string) []byte {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("billing read failed, treating as empty",
			slog.String("key", key), sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	return raw
}

func (s *Store) write(ctx context.Context, op, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
