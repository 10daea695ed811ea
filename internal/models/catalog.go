package models

// CoinPackage статическая позиция каталога пакетов монет.
type CoinPackage struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Coins      int     `json:"coins"`
	BonusCoins int     `json:"bonus_coins,omitempty"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Popular    bool    `json:"popular,omitempty"`
}

// SubscriptionPlan статическая позиция каталога тарифных планов.
type SubscriptionPlan struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// PromoResult результат проверки промокода.
type PromoResult struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"` // Доля скидки, например 0.1 для 10%
	Message  string  `json:"message"`
}
