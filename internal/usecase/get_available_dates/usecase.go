package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
)

const metricsView = "dates"

// UseCase use case календаря доступности: есть ли на дату хотя бы один свободный слот
// Считается тем же генератором, что и список слотов, поэтому дата, отмеченная
// доступной, всегда имеет слот в ответе get_available_slots
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	horizonDays     int
	maxRangeDays    int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	location *time.Location,
	horizonDays int,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		horizonDays:     horizonDays,
		maxRangeDays:    maxRangeDays,
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: professional=%d, service=%d", req.ProfessionalID, req.ServiceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 2. Определяем период
	from, to, err := resolveRange(req, domain.DateOf(now), uc.horizonDays, uc.maxRangeDays)
	if err != nil {
		uc.logger.Warn("GetAvailableDates: invalid range: %v", err)
		return nil, err
	}

	started := time.Now()
	defer func() { uc.metrics.ObserveAvailability(metricsView, time.Since(started)) }()

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.ProfessionalID != req.ProfessionalID {
		uc.logger.Warn("GetAvailableDates: service id=%d does not belong to professional id=%d",
			req.ServiceID, req.ProfessionalID)
		return nil, ErrServiceNotFound
	}

	params := availability.Params{
		DurationMinutes: service.DurationMinutes,
		Now:             now,
		HorizonDays:     uc.horizonDays,
	}

	// 4. Неактивная услуга: все даты недоступны, но значение есть для каждой даты
	if service.IsActive() {
		blocks, err := uc.scheduleRepo.GetByProfessional(ctx, req.ProfessionalID, true)
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to get schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		params.Blocks = blocks
	}

	// 5. Все записи периода читаются одним запросом
	var ledger []*domain.Appointment
	if len(params.Blocks) > 0 {
		ledger, err = uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentFilter{
			ProfessionalID: &req.ProfessionalID,
			StartDate:      &from,
			EndDate:        &to,
		})
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to get appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
	}

	dates := params.Summarize(from, to, ledger)

	available := 0
	for _, d := range dates {
		if d.HasAvailability {
			available++
		}
	}
	uc.logger.Info("GetAvailableDates: %d of %d dates available for professional=%d, service=%d",
		available, len(dates), req.ProfessionalID, req.ServiceID)

	return &Response{
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		From:           from,
		To:             to,
		Dates:          dates,
	}, nil
}
