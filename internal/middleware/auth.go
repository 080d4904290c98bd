// Package middleware содержит HTTP middleware сервиса fitpro.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitpro/fitpro-system/internal/model"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

const (
	authCookieName = "auth_token"
	authCookieTTL  = 365 * 24 * time.Hour
)

// AuthMiddleware выполняет проверку аутентификации пользователя по подписанному cookie.
// Значение cookie имеет вид id.role.signature, подпись HMAC-SHA256 по "id.role".
type AuthMiddleware struct {
	secretKey []byte
}

// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware с указанным секретным ключом.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &AuthMiddleware{
		secretKey: key,
	}
}

// Middleware проверяет cookie авторизации и добавляет идентификатор
// пользователя и его роль в контекст запроса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		userID, role, ok := a.parseCookie(cookie.Value)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает запрос дальше только при совпадении роли из cookie.
// Ставится после Middleware.
func (a *AuthMiddleware) RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := GetRoleFromContext(r.Context())
			if !ok || got != role {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetAuthCookie устанавливает cookie авторизации для указанного пользователя.
func (a *AuthMiddleware) SetAuthCookie(w http.ResponseWriter, userID uuid.UUID, role model.Role) {
	value := a.sign(userID.String(), string(role))

	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(authCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (a *AuthMiddleware) sign(id, role string) string {
	payload := id + "." + role
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(payload))
	signature := mac.Sum(nil)
	return payload + "." + hex.EncodeToString(signature)
}

func (a *AuthMiddleware) parseCookie(cookieValue string) (uuid.UUID, model.Role, bool) {
	parts := strings.Split(cookieValue, ".")
	if len(parts) != 3 {
		return uuid.Nil, "", false
	}

	idStr := parts[0]
	roleStr := parts[1]
	signature := parts[2]

	expected := a.sign(idStr, roleStr)
	expectedParts := strings.Split(expected, ".")
	if len(expectedParts) != 3 {
		return uuid.Nil, "", false
	}

	if !hmac.Equal([]byte(signature), []byte(expectedParts[2])) {
		return uuid.Nil, "", false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", false
	}

	return id, model.Role(roleStr), true
}

// UserFromRequest извлекает пользователя из cookie запроса, не требуя
// аутентификации. Используется на публичных маршрутах, где авторизация
// необязательна.
func (a *AuthMiddleware) UserFromRequest(r *http.Request) (uuid.UUID, model.Role, bool) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return uuid.Nil, "", false
	}
	return a.parseCookie(cookie.Value)
}

// GetUserIDFromContext извлекает идентификатор пользователя из контекста запроса.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetRoleFromContext извлекает роль пользователя из контекста запроса.
func GetRoleFromContext(ctx context.Context) (model.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(model.Role)
	return role, ok
}
