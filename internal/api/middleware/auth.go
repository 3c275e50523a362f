package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/lkbeauty/salon-booking-service/internal/api/handlers"
)

// HeaderCustomerID заголовок с идентификатором клиента
const HeaderCustomerID = "X-Customer-ID"

type contextKey string

const customerIDKey contextKey = "customerID"

// Auth проверяет наличие корректного заголовка X-Customer-ID
// и кладет ID клиента в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(HeaderCustomerID)
		if header == "" {
			handlers.RespondForbidden(w, "отсутствует заголовок "+HeaderCustomerID)
			return
		}

		customerID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || customerID <= 0 {
			handlers.RespondForbidden(w, "некорректный заголовок "+HeaderCustomerID)
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCustomerID извлекает ID клиента из контекста
func GetCustomerID(ctx context.Context) (int64, bool) {
	customerID, ok := ctx.Value(customerIDKey).(int64)
	return customerID, ok
}
