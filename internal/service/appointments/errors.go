package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	// из текущего статуса
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrTooLateToCancel возвращается, когда до начала визита осталось
	// меньше времени отсечки
	ErrTooLateToCancel = errors.New("too late to cancel this appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
