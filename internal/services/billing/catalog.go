package billing

import (
	"strings"

	"github.com/toonpulse/webtoon-platform/internal/models"
)

// Статический каталог платформы. Позиции не имеют жизненного цикла
// и отдаются наружу копиями.
var coinPackages = []models.CoinPackage{
	{ID: "coins-100", Name: "Starter Pack", Coins: 100, Price: 9.99, Currency: "USD"},
	{ID: "coins-300", Name: "Reader Pack", Coins: 300, BonusCoins: 30, Price: 24.99, Currency: "USD", Popular: true},
	{ID: "coins-500", Name: "Binge Pack", Coins: 500, BonusCoins: 75, Price: 39.99, Currency: "USD"},
	{ID: "coins-1000", Name: "Collector Pack", Coins: 1000, BonusCoins: 200, Price: 69.99, Currency: "USD"},
}

var subscriptionPlans = []models.SubscriptionPlan{
	{ID: "basic", Name: "Basic", Price: 9.99, Currency: "USD"},
	{ID: "premium", Name: "Premium", Price: 19.99, Currency: "USD"},
}

// promoCodes таблица распознаваемых промокодов: код → доля скидки.
// Коды сверяются без учёта регистра.
var promoCodes = map[string]struct {
	Discount float64
	Message  string
}{
	"WELCOME10": {Discount: 0.10, Message: "Welcome discount: 10% off your purchase."},
}

// CoinPackages возвращает каталог пакетов монет.
func (s *Service) CoinPackages() []models.CoinPackage {
	out := make([]models.CoinPackage, len(coinPackages))
	copy(out, coinPackages)
	return out
}

// SubscriptionPlans возвращает каталог тарифных планов.
func (s *Service) SubscriptionPlans() []models.SubscriptionPlan {
	out := make([]models.SubscriptionPlan, len(subscriptionPlans))
	copy(out, subscriptionPlans)
	return out
}

// ValidatePromoCode проверяет промокод без учёта регистра.
// Никогда не возвращает ошибку: неизвестный код — валидный исход.
func (s *Service) ValidatePromoCode(code string) models.PromoResult {
	if promo, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return models.PromoResult{
			Valid:    true,
			Discount: promo.Discount,
			Message:  promo.Message,
		}
	}
	return models.PromoResult{
		Valid:   false,
		Message: "Invalid promo code.",
	}
}

func findCoinPackage(id string) *models.CoinPackage {
	for i := range coinPackages {
		if coinPackages[i].ID == id {
			return &coinPackages[i]
		}
	}
	return nil
}

func findSubscriptionPlan(id string) *models.SubscriptionPlan {
	for i := range subscriptionPlans {
		if subscriptionPlans[i].ID == id {
			return &subscriptionPlans[i]
		}
	}
	return nil
}
