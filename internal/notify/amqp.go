package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
)

// AMQPNotifier публикует уведомления в очередь RabbitMQ.
// Потребитель очереди (UI-шлюз) решает, как показать уведомление.
type AMQPNotifier struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *slog.Logger
}

// NewAMQPNotifier подключается к RabbitMQ и объявляет очередь уведомлений.
func NewAMQPNotifier(url, queue string, log *slog.Logger) (*AMQPNotifier, error) {
	const op = "notify.NewAMQPNotifier"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &AMQPNotifier{
		conn:  conn,
		ch:    ch,
		queue: queue,
		log:   log,
	}, nil
}

// Notify публикует уведомление в очередь. Сбой публикации логируется
// и не влияет на исход вызвавшей операции.
func (n *AMQPNotifier) Notify(_ context.Context, note Notification) {
	body, err := json.Marshal(note)
	if err != nil {
		n.log.Warn("failed to encode notification", sl.Err(err))
		return
	}

	err = n.ch.Publish(
		"",
		n.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		n.log.Warn("failed to publish notification", sl.Err(err))
	}
}

// Close закрывает канал и соединение с RabbitMQ.
func (n *AMQPNotifier) Close() error {
	if err := n.ch.Close(); err != nil {
		return err
	}
	return n.conn.Close()
}
