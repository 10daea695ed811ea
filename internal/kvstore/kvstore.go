// Package kvstore реализует хранилище ключ-значение с подменяемым бэкендом.
//
// Всё состояние платформы (учётные записи, слот сессии, платёжные коллекции)
// лежит в одном key-value пространстве с одним логическим писателем.
// Доступны три бэкенда: карта в памяти, Redis и PostgreSQL.
package kvstore

import "context"

// Store описывает контракт хранилища ключ-значение.
type Store interface {
	// Get возвращает значение по ключу и признак его наличия.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set сохраняет значение по ключу, перезаписывая прежнее.
	Set(ctx context.Context, key string, value []byte) error
	// Delete удаляет ключ. Отсутствие ключа не является ошибкой.
	Delete(ctx context.Context, key string) error
}
