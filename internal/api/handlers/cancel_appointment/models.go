package cancel_appointment

import "github.com/lkbeauty/salon-booking-service/internal/domain"

// CancelResponse тело успешного ответа отмены
type CancelResponse struct {
	Status string `json:"status"` // "cancelled"
}

// NewCancelResponse собирает ответ успешной отмены
func NewCancelResponse() *CancelResponse {
	return &CancelResponse{Status: string(domain.StatusCancelled)}
}
