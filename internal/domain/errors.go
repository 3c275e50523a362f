package domain

import "errors"

var (
	// ErrInvalidTimeRange возвращается при некорректных значениях времени
	// в данных (признак повреждения данных выше по течению)
	ErrInvalidTimeRange = errors.New("domain: invalid time range")

	// ErrInvalidConfig возвращается при нарушении инвариантов конфигурации салона
	ErrInvalidConfig = errors.New("domain: invalid salon config")
)
