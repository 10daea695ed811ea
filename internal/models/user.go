// Package models содержит доменную модель платформы вебтунов:
// пользователей, платёжные методы, транзакции и подписки.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Role роль пользователя на платформе.
type Role string

// Допустимые роли пользователей.
const (
	RoleAdmin      Role = "admin"
	RoleCreator    Role = "creator"
	RoleTranslator Role = "translator"
	RoleReader     Role = "reader"
)

// Valid сообщает, входит ли роль в список допустимых.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCreator, RoleTranslator, RoleReader:
		return true
	}
	return false
}

// User представляет пользователя платформы без секретных полей.
// Именно в таком виде данные пользователя возвращаются наружу
// и хранятся в слоте сессии.
type User struct {
	UID         string     `json:"uid"`          // Уникальный идентификатор пользователя
	Name        string     `json:"name"`         // Отображаемое имя
	Email       string     `json:"email"`        // Электронная почта (уникальная, без учёта регистра)
	Role        Role       `json:"role"`         // Роль пользователя
	AvatarURL   string     `json:"avatar_url"`   // Ссылка на аватар
	CreatedAt   time.Time  `json:"created_at"`   // Дата регистрации
	LastLoginAt *time.Time `json:"last_login_at,omitempty"` // Дата последнего входа
}

// Credential расширяет User дайджестом пароля. Не покидает границу
// хранилища учётных данных и сервиса аутентификации.
type Credential struct {
	User
	PasswordDigest string `json:"password_digest"`
}

// Sanitized возвращает пользователя без дайджеста пароля.
func (c Credential) Sanitized() User {
	return c.User
}

// ProfileUpdate описывает частичное обновление профиля: nil-поля не меняются.
type ProfileUpdate struct {
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
