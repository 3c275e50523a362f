package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStaffSlotTaken возвращается при нарушении частичного уникального
	// индекса (staff, date, start_time): конкурирующая запись успела
	// зафиксироваться первой. Ожидаемый исход гонки, а не фатальная ошибка.
	ErrStaffSlotTaken = errors.New("appointment.repository: staff slot already taken")

	// ErrDuplicateService возвращается при попытке добавить одну услугу
	// в запись дважды
	ErrDuplicateService = errors.New("appointment.repository: duplicate service in appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
