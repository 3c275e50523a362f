package salonconfig

import "errors"

var (
	// ErrConfigNotFound конфигурация салона не найдена
	ErrConfigNotFound = errors.New("salonconfig: config not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("salonconfig: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("salonconfig: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("salonconfig: failed to scan row")
)
