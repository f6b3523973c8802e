package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие заголовка X-User-ID и кладет ID пользователя в контекст
// Аутентификацию выполняет API-шлюз, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			handlers.RespondUnauthorized(w, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext извлекает ID пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
