package models

import "time"

// PaymentMethodType тип платёжного метода.
type PaymentMethodType string

// Поддерживаемые типы платёжных методов.
const (
	MethodCreditCard   PaymentMethodType = "credit_card"
	MethodPayPal       PaymentMethodType = "paypal"
	MethodGooglePay    PaymentMethodType = "google_pay"
	MethodApplePay     PaymentMethodType = "apple_pay"
	MethodBankTransfer PaymentMethodType = "bank_transfer"
)

// PaymentMethod представляет сохранённый платёжный метод пользователя.
// Для каждого пользователя дефолтным может быть не более одного метода,
// и ровно один, если методы вообще есть.
type PaymentMethod struct {
	ID           string            `json:"id"`
	UserUID      string            `json:"user_uid"`
	Type         PaymentMethodType `json:"type"`
	Label        string            `json:"label,omitempty"`         // Пользовательское название метода
	CardBrand    string            `json:"card_brand,omitempty"`    // Бренд карты (visa, mastercard...)
	CardLast4    string            `json:"card_last4,omitempty"`    // Последние четыре цифры карты
	CardExpiry   string            `json:"card_expiry,omitempty"`   // Срок действия карты, MM/YY
	AccountEmail string            `json:"account_email,omitempty"` // Почта аккаунта для кошельков
	IsDefault    bool              `json:"is_default"`
	CreatedAt    time.Time         `json:"created_at"`
}

// TransactionStatus статус транзакции.
type TransactionStatus string

// Статусы транзакций.
const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxFailed    TransactionStatus = "failed"
	TxRefunded  TransactionStatus = "refunded"
)

// Transaction представляет запись о платеже. После создания не изменяется.
type Transaction struct {
	ID              string            `json:"id"`
	UserUID         string            `json:"user_uid"`
	Amount          float64           `json:"amount"`
	Currency        string            `json:"currency"`
	Status          TransactionStatus `json:"status"`
	PaymentMethodID string            `json:"payment_method_id"`
	Description     string            `json:"description"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// SubscriptionStatus статус подписки.
type SubscriptionStatus string

// Статусы подписок.
const (
	SubActive   SubscriptionStatus = "active"
	SubCanceled SubscriptionStatus = "canceled"
	SubPaused   SubscriptionStatus = "paused"
	SubTrial    SubscriptionStatus = "trial"
)

// Subscription представляет подписку пользователя на тарифный план.
// Название плана денормализовано на момент оформления.
// Одновременно у пользователя может быть не более одной активной подписки.
type Subscription struct {
	ID                 string             `json:"id"`
	UserUID            string             `json:"user_uid"`
	PlanID             string             `json:"plan_id"`
	PlanName           string             `json:"plan_name"`
	Amount             float64            `json:"amount"`
	Currency           string             `json:"currency"`
	Status             SubscriptionStatus `json:"status"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	PaymentMethodID    string             `json:"payment_method_id"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	CreatedAt          time.Time          `json:"created_at"`
}
