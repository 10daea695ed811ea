// Package billing содержит бизнес-логику платёжного контура: платёжные
// методы, покупки монет, подписки и промокоды.
//
// Все операции принимают идентификатор пользователя от вызывающей стороны;
// проверка прав доступа — забота границы аутентификации, а не этого сервиса.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toonpulse/webtoon-platform/internal/models"
)

// Ошибки платёжного контура, различимые вызывающей стороной.
var (
	// ErrInvalidPackage неизвестный пакет монет.
	ErrInvalidPackage = errors.New("unknown coin package")
	// ErrInvalidPlan неизвестный тарифный план.
	ErrInvalidPlan = errors.New("unknown subscription plan")
	// ErrAlreadySubscribed у пользователя уже есть активная подписка.
	ErrAlreadySubscribed = errors.New("active subscription already exists")
	// ErrNoPaymentMethods у пользователя нет платёжных методов.
	ErrNoPaymentMethods = errors.New("no payment methods")
	// ErrPaymentMethodNotFound платёжный метод не найден.
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	// ErrNoSubscriptions у пользователя нет подписок.
	ErrNoSubscriptions = errors.New("no subscriptions")
	// ErrSubscriptionNotFound подписка не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Repository определяет методы для работы с платёжными коллекциями в хранилище.
type Repository interface {
	// Methods возвращает платёжные методы пользователя в порядке сохранения.
	Methods(ctx context.Context, userUID string) []models.PaymentMethod
	// SaveMethods перезаписывает коллекцию платёжных методов пользователя.
	SaveMethods(ctx context.Context, userUID string, list []models.PaymentMethod) error
	// Transactions возвращает транзакции пользователя.
	Transactions(ctx context.Context, userUID string) []models.Transaction
	// SaveTransactions перезаписывает коллекцию транзакций пользователя.
	SaveTransactions(ctx context.Context, userUID string, list []models.Transaction) error
	// Subscriptions возвращает подписки пользователя.
	Subscriptions(ctx context.Context, userUID string) []models.Subscription
	// SaveSubscriptions перезаписывает коллекцию подписок пользователя.
	SaveSubscriptions(ctx context.Context, userUID string, list []models.Subscription) error
}

// Service реализует бизнес-логику платёжного контура.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// PaymentMethods возвращает платёжные методы пользователя.
// Для неизвестного пользователя — пустая коллекция, не ошибка.
func (s *Service) PaymentMethods(ctx context.Context, userUID string) []models.PaymentMethod {
	return s.repo.Methods(ctx, userUID)
}

// Transactions возвращает транзакции пользователя.
func (s *Service) Transactions(ctx context.Context, userUID string) []models.Transaction {
	return s.repo.Transactions(ctx, userUID)
}

// Subscriptions возвращает подписки пользователя.
func (s *Service) Subscriptions(ctx context.Context, userUID string) []models.Subscription {
	return s.repo.Subscriptions(ctx, userUID)
}

// AddPaymentMethod сохраняет новый платёжный метод. Первый метод пользователя
// становится дефолтным всегда; явный запрос дефолтности снимает флаг
// с остальных методов.
func (s *Service) AddPaymentMethod(ctx context.Context, userUID string, method models.PaymentMethod) (*models.PaymentMethod, error) {
	const op = "billing.AddPaymentMethod"

	method.ID = uuid.New().String()
	method.UserUID = userUID
	method.CreatedAt = time.Now().UTC()

	existing := s.repo.Methods(ctx, userUID)
	if len(existing) == 0 || method.IsDefault {
		for i := range existing {
			existing[i].IsDefault = false
		}
		method.IsDefault = true
	}

	updated := append(existing, method)
	if err := s.repo.SaveMethods(ctx, userUID, updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment method added",
		slog.String("user_uid", userUID),
		slog.String("method_id", method.ID),
		slog.String("type", string(method.Type)))
	return &method, nil
}

// SetDefaultPaymentMethod делает указанный метод дефолтным и возвращает
// всю обновлённую коллекцию.
func (s *Service) SetDefaultPaymentMethod(ctx context.Context, userUID, methodID string) ([]models.PaymentMethod, error) {
	const op = "billing.SetDefaultPaymentMethod"

	methods := s.repo.Methods(ctx, userUID)
	if len(methods) == 0 {
		return nil, ErrNoPaymentMethods
	}

	found := false
	for i := range methods {
		if methods[i].ID == methodID {
			found = true
		}
	}
	if !found {
		return nil, ErrPaymentMethodNotFound
	}

	for i := range methods {
		methods[i].IsDefault = methods[i].ID == methodID
	}
	if err := s.repo.SaveMethods(ctx, userUID, methods); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return methods, nil
}

// DeletePaymentMethod удаляет метод. Если удалён дефолтный и остались
// другие методы, дефолтным становится первый по порядку хранения.
func (s *Service) DeletePaymentMethod(ctx context.Context, userUID, methodID string) ([]models.PaymentMethod, error) {
	const op = "billing.DeletePaymentMethod"

	methods := s.repo.Methods(ctx, userUID)
	if len(methods) == 0 {
		return nil, ErrNoPaymentMethods
	}

	kept := make([]models.PaymentMethod, 0, len(methods))
	wasDefault := false
	found := false
	for _, m := range methods {
		if m.ID == methodID {
			found = true
			wasDefault = m.IsDefault
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return nil, ErrPaymentMethodNotFound
	}

	if wasDefault && len(kept) > 0 {
		kept[0].IsDefault = true
	}
	if err := s.repo.SaveMethods(ctx, userUID, kept); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return kept, nil
}

// PurchaseCoins оформляет покупку пакета монет и возвращает завершённую
// транзакцию. Распознанный промокод даёт скидку, нераспознанный молча
// игнорируется. Сумма со скидкой не округляется. Баланс монет этим слоем
// не моделируется.
func (s *Service) PurchaseCoins(ctx context.Context, userUID, packageID, paymentMethodID, promoCode string) (*models.Transaction, error) {
	const op = "billing.PurchaseCoins"

	pkg := findCoinPackage(packageID)
	if pkg == nil {
		return nil, ErrInvalidPackage
	}

	amount := pkg.Price
	metadata := map[string]string{"package_id": pkg.ID}
	if promo, ok := promoCodes[strings.ToUpper(strings.TrimSpace(promoCode))]; ok {
		amount = pkg.Price * (1 - promo.Discount)
		metadata["promo_code"] = strings.ToUpper(strings.TrimSpace(promoCode))
	}

	description := fmt.Sprintf("Purchase of %d coins", pkg.Coins)
	if pkg.BonusCoins > 0 {
		description = fmt.Sprintf("Purchase of %d coins (+%d bonus)", pkg.Coins, pkg.BonusCoins)
	}

	tx := models.Transaction{
		ID:              uuid.New().String(),
		UserUID:         userUID,
		Amount:          amount,
		Currency:        pkg.Currency,
		Status:          models.TxCompleted,
		PaymentMethodID: paymentMethodID,
		Description:     description,
		Metadata:        metadata,
		CreatedAt:       time.Now().UTC(),
	}

	all := append(s.repo.Transactions(ctx, userUID), tx)
	if err := s.repo.SaveTransactions(ctx, userUID, all); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("coins purchased",
		slog.String("user_uid", userUID),
		slog.String("package_id", pkg.ID),
		slog.Float64("amount", amount))
	return &tx, nil
}

// SubscribeToPlan оформляет подписку на план с периодом в один месяц от
// текущего момента и записывает транзакцию списания. Вторая активная
// подписка отклоняется.
func (s *Service) SubscribeToPlan(ctx context.Context, userUID, planID, paymentMethodID string) (*models.Subscription, error) {
	const op = "billing.SubscribeToPlan"

	plan := findSubscriptionPlan(planID)
	if plan == nil {
		return nil, ErrInvalidPlan
	}

	subs := s.repo.Subscriptions(ctx, userUID)
	for _, sub := range subs {
		if sub.Status == models.SubActive {
			return nil, ErrAlreadySubscribed
		}
	}

	now := time.Now().UTC()
	sub := models.Subscription{
		ID:                 uuid.New().String(),
		UserUID:            userUID,
		PlanID:             plan.ID,
		PlanName:           plan.Name,
		Amount:             plan.Price,
		Currency:           plan.Currency,
		Status:             models.SubActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
		PaymentMethodID:    paymentMethodID,
		CancelAtPeriodEnd:  false,
		CreatedAt:          now,
	}

	if err := s.repo.SaveSubscriptions(ctx, userUID, append(subs, sub)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx := models.Transaction{
		ID:              uuid.New().String(),
		UserUID:         userUID,
		Amount:          plan.Price,
		Currency:        plan.Currency,
		Status:          models.TxCompleted,
		PaymentMethodID: paymentMethodID,
		Description:     fmt.Sprintf("Subscription to %s plan", plan.Name),
		Metadata: map[string]string{
			"plan_id":         plan.ID,
			"subscription_id": sub.ID,
		},
		CreatedAt: now,
	}
	if err := s.repo.SaveTransactions(ctx, userUID, append(s.repo.Transactions(ctx, userUID), tx)); err != nil {
		// Операция применяется целиком или не применяется вовсе:
		// без записи о списании подписка не остаётся.
		if rbErr := s.repo.SaveSubscriptions(ctx, userUID, subs); rbErr != nil {
			s.log.Error("failed to roll back subscription after charge write failure",
				slog.String("user_uid", userUID),
				slog.String("subscription_id", sub.ID))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription created",
		slog.String("user_uid", userUID),
		slog.String("plan_id", plan.ID),
		slog.String("subscription_id", sub.ID))
	return &sub, nil
}

// CancelSubscription отменяет подписку. При immediate статус сразу становится
// canceled; иначе подписка остаётся активной до конца оплаченного периода
// с выставленным cancel_at_period_end. Автоматического перехода по окончании
// периода здесь нет — им занимается внешний биллинг.
func (s *Service) CancelSubscription(ctx context.Context, userUID, subscriptionID string, immediate bool) (*models.Subscription, error) {
	const op = "billing.CancelSubscription"

	subs := s.repo.Subscriptions(ctx, userUID)
	if len(subs) == 0 {
		return nil, ErrNoSubscriptions
	}

	idx := -1
	for i := range subs {
		if subs[i].ID == subscriptionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrSubscriptionNotFound
	}

	if immediate {
		subs[idx].Status = models.SubCanceled
	} else {
		subs[idx].CancelAtPeriodEnd = true
	}

	if err := s.repo.SaveSubscriptions(ctx, userUID, subs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription canceled",
		slog.String("user_uid", userUID),
		slog.String("subscription_id", subscriptionID),
		slog.Bool("immediate", immediate))
	return &subs[idx], nil
}
