package schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	Create(ctx context.Context, block *domain.WeeklyScheduleBlock) (*domain.WeeklyScheduleBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.WeeklyScheduleBlock, error)
	GetByProfessional(ctx context.Context, professionalID int64, onlyActive bool) ([]*domain.WeeklyScheduleBlock, error)
	Update(ctx context.Context, block *domain.WeeklyScheduleBlock) (*domain.WeeklyScheduleBlock, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
