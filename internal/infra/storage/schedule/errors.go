package schedule

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блок расписания не найден
	ErrBlockNotFound = errors.New("schedule.repository: schedule block not found")

	// ErrBlockOverlap возвращается при пересечении активных блоков одного дня
	// (нарушение EXCLUDE constraint weekly_schedule_blocks_no_overlap)
	ErrBlockOverlap = errors.New("schedule.repository: schedule block overlaps another active block")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
