package catalog

import "errors"

var (
	// ErrUnknownService одна или несколько запрошенных услуг не найдены
	// или неактивны
	ErrUnknownService = errors.New("catalog: unknown service")

	// ErrStaffNotFound мастер не найден
	ErrStaffNotFound = errors.New("catalog: staff not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("catalog: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("catalog: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("catalog: failed to scan row")
)
