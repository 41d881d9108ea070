package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
)

const metricsView = "slots"

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	horizonDays     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location задает часовой пояс, в котором определяется "сегодня"
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	location *time.Location,
	horizonDays int,
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
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Неактивная услуга, дата вне горизонта и отсутствие расписания дают пустой список, а не ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, service=%d, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	started := time.Now()
	defer func() { uc.metrics.ObserveAvailability(metricsView, time.Since(started)) }()

	date := domain.DateOf(req.Date)
	response := &Response{
		Date:           date,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Slots:          []domain.Slot{},
	}

	// 2. Получаем услугу и проверяем, что она принадлежит специалисту
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.ProfessionalID != req.ProfessionalID {
		uc.logger.Warn("GetAvailableSlots: service id=%d does not belong to professional id=%d",
			req.ServiceID, req.ProfessionalID)
		return nil, ErrServiceNotFound
	}
	response.DurationMinutes = service.DurationMinutes

	// 3. Неактивные услуги не участвуют в генерации слотов
	if !service.IsActive() {
		uc.logger.Info("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return response, nil
	}

	params := availability.Params{
		DurationMinutes: service.DurationMinutes,
		Now:             uc.timeProvider.Now().In(uc.location),
		HorizonDays:     uc.horizonDays,
	}

	// 4. Дата вне горизонта записи
	if !params.InHorizon(date) {
		uc.logger.Info("GetAvailableSlots: date %s is outside of booking horizon", date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Получаем активные блоки расписания
	blocks, err := uc.scheduleRepo.GetByProfessional(ctx, req.ProfessionalID, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if len(blocks) == 0 {
		uc.logger.Info("GetAvailableSlots: professional id=%d has no schedule", req.ProfessionalID)
		return response, nil
	}
	params.Blocks = blocks

	// 6. Получаем неотмененные записи специалиста на дату
	ledger, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentFilter{
		ProfessionalID: &req.ProfessionalID,
		StartDate:      &date,
		EndDate:        &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Генерируем слоты, клиенту отдаем только доступные
	response.Slots = params.AvailableSlots(date, ledger)

	uc.logger.Info("GetAvailableSlots: %d available slots for professional=%d, service=%d, date=%s",
		len(response.Slots), req.ProfessionalID, req.ServiceID, date.Format(domain.DateFormat))

	return response, nil
}
