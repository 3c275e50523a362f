package create_appointment

import (
	"time"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID int64            // ID клиента
	ServiceIDs []int64          // ID выбранных услуг (минимум одна)
	Date       time.Time        // Дата визита (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Пожелания клиента (опционально)
}

// ServiceLine строка услуги в созданной записи
type ServiceLine struct {
	ServiceID       int64   // ID услуги
	ServiceName     string  // Название на момент записи
	DurationMinutes int     // Длительность на момент записи
	Price           float64 // Цена на момент записи
}

// Response модель ответа с созданной записью
type Response struct {
	ID                   int64            // ID созданной записи
	CustomerID           int64            // ID клиента
	StaffID              int64            // ID назначенного мастера
	Date                 time.Time        // Дата визита
	StartTime            types.TimeString // Время начала
	EndTime              types.TimeString // Время окончания (без буфера)
	Status               string           // Статус записи
	Services             []ServiceLine    // Состав визита
	TotalDurationMinutes int              // Суммарная длительность
	TotalPrice           float64          // Суммарная стоимость
	Notes                *string          // Пожелания клиента

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
