// Package password реализует получение и проверку дайджестов паролей.
//
// Поддерживаются две схемы. Схема "legacy" — обратимое base64-кодирование,
// унаследованное от первой версии платформы. Она НЕ является криптографически
// стойкой и сохранена только ради совместимости с уже существующими
// учётными записями. Схема "bcrypt" — полноценное медленное хеширование,
// включается настройкой password_scheme.
//
// Verify различает схемы по префиксу дайджеста, поэтому хранилище может
// содержать записи обеих схем одновременно.
package password

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Scheme схема получения дайджеста пароля.
type Scheme string

// Поддерживаемые схемы.
const (
	SchemeLegacy Scheme = "legacy"
	SchemeBcrypt Scheme = "bcrypt"
)

// ErrMismatch возвращается, когда пароль не соответствует дайджесту.
var ErrMismatch = errors.New("password does not match digest")

// Digest возвращает дайджест пароля по выбранной схеме.
func Digest(raw string, scheme Scheme) (string, error) {
	const op = "password.Digest"
	switch scheme {
	case SchemeLegacy, "":
		return base64.StdEncoding.EncodeToString([]byte(raw)), nil
	case SchemeBcrypt:
		hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return string(hashed), nil
	default:
		return "", fmt.Errorf("%s: unknown scheme %q", op, scheme)
	}
}

// Verify проверяет пароль против дайджеста любой из поддерживаемых схем.
// Возвращает nil при совпадении, иначе ErrMismatch.
func Verify(raw, digest string) error {
	if strings.HasPrefix(digest, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(raw)); err != nil {
			return ErrMismatch
		}
		return nil
	}
	if base64.StdEncoding.EncodeToString([]byte(raw)) != digest {
		return ErrMismatch
	}
	return nil
}
