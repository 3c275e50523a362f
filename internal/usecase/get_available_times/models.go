package get_available_times

import (
	"time"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// Request модель запроса доступного времени
type Request struct {
	ServiceIDs []int64   // ID выбранных услуг (минимум одна)
	Date       time.Time // Дата визита
}

// Slot доступный слот с количеством свободных мастеров
type Slot struct {
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время окончания (без буфера)
	AvailableStaff int              // Сколько мастеров свободно на слот
}

// ScheduleConfig параметры сетки, по которой считались слоты.
// Возвращаются вместе со слотами, чтобы клиент показывал расписание
// в тех же терминах, что и сервер
type ScheduleConfig struct {
	OpeningTime         types.TimeString // Время открытия
	ClosingTime         types.TimeString // Время закрытия
	SlotIntervalMinutes int              // Шаг сетки слотов
}

// Response модель ответа с доступными слотами
type Response struct {
	Date                 time.Time      // Дата визита
	TotalDurationMinutes int            // Суммарная длительность выбранных услуг
	Config               ScheduleConfig // Сетка, по которой считались слоты
	Slots                []Slot         // Доступные слоты в хронологическом порядке
}
