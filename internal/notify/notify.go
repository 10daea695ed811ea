// Package notify описывает канал пользовательских уведомлений.
//
// Сервисы сообщают об исходах операций через интерфейс Notifier,
// не зная, как уведомление будет показано. Доставкой занимается
// конкретная реализация: лог или очередь AMQP.
package notify

import "context"

// Варианты уведомлений.
const (
	VariantSuccess = "success"
	VariantError   = "error"
)

// Notification пользовательское уведомление об исходе операции.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Notifier доставляет уведомления пользователю. Доставка выполняется
// по возможности: сбой доставки не влияет на исход операции.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
