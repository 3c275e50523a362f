package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrUnknownService возвращается, когда хотя бы одна услуга не найдена или неактивна
	ErrUnknownService = errors.New("create_appointment: unknown service")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда запись нарушает minAdvanceHours
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов
	// или визит не помещается до закрытия
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotUnavailable возвращается, когда ни один мастер не свободен на слот
	ErrSlotUnavailable = errors.New("create_appointment: slot is not available")

	// ErrCapacityExceeded возвращается, когда все рабочие места салона заняты на слот
	ErrCapacityExceeded = errors.New("create_appointment: salon capacity exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
