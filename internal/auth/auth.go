// Package auth выдаёт и проверяет подписанную куку владельца ссылок.
// Никакой авторизации здесь нет: идентификатор лишь помечает записи
// полем owner_id.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	cookieName   = "owner_token"
	cookieMaxAge = 365 * 24 * 60 * 60 // 1 год
)

type Auth struct {
	SecretKey string
}

func New(secret string) *Auth {
	return &Auth{SecretKey: secret}
}

// Создать подпись
func (a *Auth) sign(ownerID string) string {
	mac := hmac.New(sha256.New, []byte(a.SecretKey))
	mac.Write([]byte(ownerID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Выдать куку вида: owner_token=ownerID:signature
func (a *Auth) issueCookie(w http.ResponseWriter) string {
	ownerID := uuid.NewString()
	sig := a.sign(ownerID)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    fmt.Sprintf("%s:%s", ownerID, sig),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   cookieMaxAge,
	})
	return ownerID
}

// GetOrSetOwnerID возвращает идентификатор владельца из корректной куки
// либо выдаёт новую.
func (a *Auth) GetOrSetOwnerID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return a.issueCookie(w)
	}

	parts := strings.SplitN(cookie.Value, ":", 2)
	if len(parts) != 2 || a.sign(parts[0]) != parts[1] {
		return a.issueCookie(w)
	}

	return parts[0]
}

// ValidateOwnerID проверяет куку, не выдавая новой.
func (a *Auth) ValidateOwnerID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	parts := strings.SplitN(cookie.Value, ":", 2)
	if len(parts) != 2 || a.sign(parts[0]) != parts[1] {
		return "", false
	}

	return parts[0], true
}

// Имитация валидной куки для тестов
func (a *Auth) SignCookieValue(ownerID string) string {
	sig := a.sign(ownerID)
	return fmt.Sprintf("%s:%s", ownerID, sig)
}
