package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const (
	userIDKey     contextKey = "userID"
	providerIDKey contextKey = "providerID"

	// HeaderUserID заголовок с ID пользователя, проставляется API-шлюзом
	HeaderUserID = "X-User-ID"

	// HeaderProviderID заголовок с ID провайдера, проставляется API-шлюзом
	HeaderProviderID = "X-Provider-ID"
)

// Auth извлекает идентификаторы вызывающего из заголовков и кладет их
// в контекст запроса. Отсутствие заголовков не отклоняет запрос:
// гостевые операции не требуют авторизации, обработчики сами решают,
// какой идентификатор им обязателен.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64); err == nil && userID > 0 {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		if providerID, err := strconv.ParseInt(r.Header.Get(HeaderProviderID), 10, 64); err == nil && providerID > 0 {
			ctx = context.WithValue(ctx, providerIDKey, providerID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetProviderID возвращает ID провайдера из контекста запроса
func GetProviderID(ctx context.Context) (int64, bool) {
	providerID, ok := ctx.Value(providerIDKey).(int64)
	return providerID, ok
}
