package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// ProviderDirectory источник данных провайдеров для проверки владения
type ProviderDirectory interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
}

// ProviderOnly пропускает только провайдера-владельца маршрута
// Должен стоять после Auth: провайдер разыскивается по ID пользователя
// из контекста и сверяется с {providerId} маршрута
func ProviderOnly(providers ProviderDirectory) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "missing X-User-ID header")
				return
			}

			provider, err := providers.GetByUserID(r.Context(), userID)
			if err != nil {
				handlers.RespondForbidden(w, "provider access required")
				return
			}

			if raw, exists := mux.Vars(r)["providerId"]; exists {
				providerID, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || providerID != provider.ID {
					handlers.RespondForbidden(w, "access to another provider denied")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
