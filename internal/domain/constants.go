package domain

// Default configuration values
const (
	DefaultBookingHorizonDays = 30
	DefaultMaxRangeDays       = 31
	DefaultPendingTTLMinutes  = 30
)

// Business validation constants
const (
	MaxServiceDurationMinutes = 720 // 12 hours
	MinDepositPercentage      = 0
	MaxDepositPercentage      = 100
	MaxNotesLength            = 500
	MaxServiceNameLength      = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses все известные статусы записей
var AllStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
	StatusCancelled,
}

// InactiveStatuses статусы, которые не занимают время в расписании
// Используется для фильтрации при расчете доступных слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
