package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey     contextKey = "userID"
	businessIDKey contextKey = "businessID"

	// HeaderUserID заголовок с ID пользователя, выставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderBusinessID заголовок с ID бизнеса, от имени которого действует пользователь
	HeaderBusinessID = "X-Business-ID"
)

// Auth проверяет наличие X-User-ID и кладет его в контекст
// X-Business-ID необязателен, при наличии тоже попадает в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "отсутствует или некорректен заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)

		if raw := r.Header.Get(HeaderBusinessID); raw != "" {
			businessID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || businessID <= 0 {
				handlers.RespondBadRequest(w, "некорректный заголовок X-Business-ID")
				return
			}
			ctx = context.WithValue(ctx, businessIDKey, businessID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireBusiness пропускает запрос только если X-Business-ID совпадает с {businessId} в пути
func RequireBusiness(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID, ok := mux.Vars(r)["businessId"]
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		pathID, err := handlers.ParseID(rawID)
		if err != nil {
			handlers.RespondBadRequest(w, "некорректный ID бизнеса")
			return
		}

		acting, ok := GetBusinessID(r.Context())
		if !ok || acting != pathID {
			handlers.RespondForbidden(w, "доступ запрещен")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetBusinessID возвращает ID бизнеса, от имени которого действует пользователь
func GetBusinessID(ctx context.Context) (int64, bool) {
	businessID, ok := ctx.Value(businessIDKey).(int64)
	return businessID, ok
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithBusinessID кладет ID бизнеса в контекст
func WithBusinessID(ctx context.Context, businessID int64) context.Context {
	return context.WithValue(ctx, businessIDKey, businessID)
}
