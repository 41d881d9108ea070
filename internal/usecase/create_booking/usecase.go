package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// Settings параметры записи из конфигурации
type Settings struct {
	Location    *time.Location // Часовой пояс специалистов
	HorizonDays int            // Горизонт записи в днях от сегодня
	PendingTTL  time.Duration  // Сколько ждем оплату депозита
	Currency    string         // Валюта депозита
}

// UseCase use case записи клиента на услугу
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	pendingStore    PendingStore
	gateway         PaymentGateway
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	settings        Settings
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	pendingStore PendingStore,
	gateway PaymentGateway,
	txManager TransactionManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		pendingStore:    pendingStore,
		gateway:         gateway,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		settings:        settings,
		logger:          logger,
	}
}

// Execute выполняет use case записи
// Услуга без депозита фиксируется сразу в статусе CONFIRMED,
// для услуги с депозитом клиент получает ссылку на оплату, слот при этом не удерживается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingOutcome(OutcomeRejected)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.loadService(ctx, req.ServiceID)
	if err != nil {
		uc.metrics.IncBookingOutcome(outcomeOf(err))
		return nil, uc.publicError(err)
	}

	booking := Booking{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Date:      domain.DateOf(req.Date),
		StartTime: req.StartTime,
		Notes:     req.Notes,
	}

	// 3. Без депозита запись фиксируется сразу
	if !service.RequiresDeposit() {
		appointment, err := uc.Commit(ctx, booking)
		if err != nil {
			return nil, err
		}
		return &Response{Appointment: appointment}, nil
	}

	// 4. С депозитом: передаем клиента платежному провайдеру
	deposit, err := uc.requestDeposit(ctx, booking, service)
	if err != nil {
		uc.metrics.IncBookingOutcome(outcomeOf(err))
		return nil, uc.publicError(err)
	}
	uc.metrics.IncBookingOutcome(OutcomeDepositRequired)

	return &Response{Deposit: deposit}, nil
}

// Commit фиксирует запись в сериализуемой транзакции
// Услуга, горизонт и слот проверяются заново по данным на момент фиксации,
// записи специалиста на дату читаются с блокировкой (FOR UPDATE)
func (uc *UseCase) Commit(ctx context.Context, booking Booking) (*domain.Appointment, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Перечитываем услугу
		service, err := uc.loadService(txCtx, booking.ServiceID)
		if err != nil {
			return err
		}

		// 2. Готовим генератор слотов
		params, err := uc.buildParams(txCtx, service)
		if err != nil {
			return err
		}

		date := domain.DateOf(booking.Date)
		if !params.InHorizon(date) {
			uc.logger.Warn("CreateBooking: date %s is out of horizon", date.Format(domain.DateFormat))
			return ErrDateOutOfHorizon
		}

		// 3. Получаем активные записи на дату с блокировкой
		ledger, err := uc.ledger(txCtx, service.ProfessionalID, date)
		if err != nil {
			return err
		}

		// 4. Проверяем слот по заново сгенерированной сетке
		if err := checkSlot(params.SlotsFor(date, ledger), booking.StartTime); err != nil {
			uc.logger.Warn("CreateBooking: slot check failed: %v", err)
			return err
		}

		endTime, err := booking.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
		}

		// 5. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			ProfessionalID: service.ProfessionalID,
			ClientID:       booking.ClientID,
			ServiceID:      service.ID,
			Date:           date,
			StartTime:      booking.StartTime,
			EndTime:        endTime,
			Status:         domain.StatusConfirmed,
			Notes:          booking.Notes,
			ServiceName:    service.Name,
			ServicePrice:   service.Price,
			DepositAmount:  booking.DepositAmount,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s %s taken concurrently",
					date.Format(domain.DateFormat), booking.StartTime)
				return fmt.Errorf("%w: %w", ErrSlotNotAvailable, err)
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Повторы сериализуемой транзакции исчерпаны: слот забрала конкурирующая запись
		if txmanager.IsRetryable(err) {
			uc.logger.Warn("CreateBooking: serialization conflict for service=%d date=%s time=%s",
				booking.ServiceID, booking.Date.Format(domain.DateFormat), booking.StartTime)
			err = ErrSlotNotAvailable
		}
		uc.metrics.IncBookingOutcome(outcomeOf(err))
		return nil, uc.publicError(err)
	}

	uc.metrics.IncBookingOutcome(OutcomeConfirmed)
	uc.logger.Info("CreateBooking: successfully created appointment id=%d", result.ID)

	return result, nil
}

// requestDeposit проверяет слот без блокировок, сохраняет ожидающую запись и создает страницу оплаты
func (uc *UseCase) requestDeposit(ctx context.Context, booking Booking, service *domain.Service) (*DepositHandoff, error) {
	params, err := uc.buildParams(ctx, service)
	if err != nil {
		return nil, err
	}

	if !params.InHorizon(booking.Date) {
		uc.logger.Warn("CreateBooking: date %s is out of horizon", booking.Date.Format(domain.DateFormat))
		return nil, ErrDateOutOfHorizon
	}

	ledger, err := uc.ledger(ctx, service.ProfessionalID, booking.Date)
	if err != nil {
		return nil, err
	}

	if err := checkSlot(params.SlotsFor(booking.Date, ledger), booking.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: slot check failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	pending := &domain.PendingBooking{
		ID:             uuid.NewString(),
		ClientID:       booking.ClientID,
		ProfessionalID: service.ProfessionalID,
		ServiceID:      service.ID,
		Date:           booking.Date,
		StartTime:      booking.StartTime,
		Notes:          booking.Notes,
		DepositAmount:  service.DepositAmount(),
		Currency:       uc.settings.Currency,
		CreatedAt:      now,
		ExpiresAt:      now.Add(uc.settings.PendingTTL),
	}

	if err := uc.pendingStore.Save(ctx, pending); err != nil {
		uc.logger.Error("CreateBooking: failed to save pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to save pending booking: %v", ErrInternal, err)
	}

	checkout, err := uc.gateway.CreateCheckout(ctx, payments.CheckoutRequest{
		PendingID:   pending.ID,
		Title:       service.Name,
		Amount:      pending.DepositAmount,
		Currency:    pending.Currency,
		ExpiresAt:   pending.ExpiresAt,
		ReturnPath:  "/deposit/" + pending.ID,
		Description: fmt.Sprintf("%s %s", booking.Date.Format(domain.DateFormat), booking.StartTime),
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create checkout for pending=%s: %v", pending.ID, err)
		if _, delErr := uc.pendingStore.Delete(ctx, pending.ID); delErr != nil {
			uc.logger.Error("CreateBooking: failed to drop pending=%s: %v", pending.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	uc.logger.Info("CreateBooking: deposit %.2f %s required, pending=%s expires at %s",
		pending.DepositAmount, pending.Currency, pending.ID, pending.ExpiresAt.Format(time.RFC3339))

	return &DepositHandoff{
		PendingID:     pending.ID,
		CheckoutURL:   checkout.URL,
		DepositAmount: pending.DepositAmount,
		Currency:      pending.Currency,
		ExpiresAt:     pending.ExpiresAt,
	}, nil
}

// loadService получает услугу и проверяет, что она доступна для записи
func (uc *UseCase) loadService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.IsActive() {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", serviceID)
		return nil, ErrServiceInactive
	}

	return service, nil
}

// buildParams читает активное расписание специалиста
func (uc *UseCase) buildParams(ctx context.Context, service *domain.Service) (availability.Params, error) {
	blocks, err := uc.scheduleRepo.GetByProfessional(ctx, service.ProfessionalID, true)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
		return availability.Params{}, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	return availability.Params{
		Blocks:          blocks,
		DurationMinutes: service.DurationMinutes,
		Now:             uc.timeProvider.Now().In(uc.settings.Location),
		HorizonDays:     uc.settings.HorizonDays,
	}, nil
}

// ledger читает неотмененные записи специалиста на дату
func (uc *UseCase) ledger(ctx context.Context, professionalID int64, date time.Time) ([]*domain.Appointment, error) {
	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentFilter{
		ProfessionalID: &professionalID,
		StartDate:      &date,
		EndDate:        &date,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	return appointments, nil
}

// publicError убирает из ошибки детали инфраструктуры
func (uc *UseCase) publicError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		return ErrSlotNotAvailable
	case errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrServiceInactive),
		errors.Is(err, ErrDateOutOfHorizon),
		errors.Is(err, ErrInvalidTimeSlot),
		errors.Is(err, ErrPaymentUnavailable):
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// outcomeOf возвращает метку метрики для ошибки записи
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		return OutcomeSlotConflict
	case errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrServiceInactive),
		errors.Is(err, ErrDateOutOfHorizon),
		errors.Is(err, ErrInvalidTimeSlot):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
