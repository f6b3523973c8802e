package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// UserDirectory источник данных пользователей для проверки ролей
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AdminOnly пропускает только пользователей с флагом is_admin
// Должен стоять после Auth: ID пользователя берется из контекста
func AdminOnly(users UserDirectory) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "missing X-User-ID header")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil || !user.IsAdmin {
				handlers.RespondForbidden(w, "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
