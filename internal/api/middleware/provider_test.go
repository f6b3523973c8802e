package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

type fakeProviderDirectory struct{ byUser map[int64]*domain.Provider }

func (f *fakeProviderDirectory) GetByUserID(_ context.Context, userID int64) (*domain.Provider, error) {
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, errors.New("provider not found")
}

func providerRouter(directory *fakeProviderDirectory) *mux.Router {
	r := mux.NewRouter()
	owner := r.PathPrefix("/providers/{providerId}").Subrouter()
	owner.Use(Auth, ProviderOnly(directory))
	owner.HandleFunc("/bills", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

func TestProviderOnly(t *testing.T) {
	directory := &fakeProviderDirectory{byUser: map[int64]*domain.Provider{
		50: {ID: 5, UserID: 50},
	}}
	router := providerRouter(directory)

	tests := []struct {
		name       string
		userHeader string
		path       string
		wantStatus int
	}{
		{name: "owner allowed", userHeader: "50", path: "/providers/5/bills", wantStatus: http.StatusOK},
		{name: "foreign provider denied", userHeader: "50", path: "/providers/6/bills", wantStatus: http.StatusForbidden},
		{name: "non-provider user denied", userHeader: "99", path: "/providers/5/bills", wantStatus: http.StatusForbidden},
		{name: "unauthenticated", userHeader: "", path: "/providers/5/bills", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.userHeader != "" {
				req.Header.Set("X-User-ID", tt.userHeader)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
