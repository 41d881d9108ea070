package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Результаты переходов для метрик
const (
	transitionApplied  = "applied"
	transitionRejected = "rejected"
	transitionConflict = "conflict"
)

// Service сервис для работы с записями и их жизненным циклом
type Service struct {
	appointmentRepo AppointmentRepository
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят только ее клиент и ее специалист
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for %s=%d", id, actor.Role, actor.ID)

	appointment, err := s.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// ListClient получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) ListClient(ctx context.Context, req *models.ListClientRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListClient: fetching appointments for client=%d, status=%v", req.Actor.ID, req.Status)

	if !req.Actor.IsClient() {
		s.logger.Warn("ListClient: %s=%d is not a client", req.Actor.Role, req.Actor.ID)
		return nil, ErrAccessDenied
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		parsed, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListClient: invalid status=%s for client=%d", *req.Status, req.Actor.ID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.Actor.ID, status)
	if err != nil {
		s.logger.Error("ListClient: repository error for client=%d: %v", req.Actor.ID, err)
		return nil, fmt.Errorf("%w: ListClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListClient: successfully fetched %d appointments for client=%d", len(appointments), req.Actor.ID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListProfessional получает записи специалиста с фильтрацией по периоду и статусу
// Доступно только самому специалисту
func (s *Service) ListProfessional(ctx context.Context, req *models.ListProfessionalRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("ListProfessional: fetching appointments for professional=%d", req.ProfessionalID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if !req.Actor.IsProfessionalOf(req.ProfessionalID) {
		s.logger.Warn("ListProfessional: %s=%d is not professional=%d", req.Actor.Role, req.Actor.ID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListProfessional: invalid filter for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListProfessional: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ListProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListProfessional: successfully fetched %d appointments for professional=%d",
		len(appointments), req.ProfessionalID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Transition переводит запись в новый статус
// Клиент и специалист могут отменить запись в любое время,
// закрыть запись как completed или no_show может только специалист после ее даты
func (s *Service) Transition(ctx context.Context, id int64, actor domain.Actor, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: appointment id=%d to %s by %s=%d", id, req.Status, actor.Role, actor.ID)

	target, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// 1. Получаем запись и проверяем, что участник к ней относится
	appointment, err := s.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем переход по машине состояний
	now := s.timeProvider.Now().In(s.location)
	if err := domain.CheckTransition(appointment, actor, target, now); err != nil {
		s.logger.Warn("Transition: appointment id=%d %s -> %s rejected: %v", id, appointment.Status, target, err)
		s.metrics.IncTransition(string(target), string(actor.Role), transitionRejected)
		return nil, mapTransitionError(err)
	}

	// 3. Применяем переход, UPDATE срабатывает только для записи в статусе confirmed
	domain.ApplyTransition(appointment, actor, target, now)
	if err := s.appointmentRepo.UpdateStatus(ctx, appointment); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("Transition: appointment id=%d changed concurrently", id)
			s.metrics.IncTransition(string(target), string(actor.Role), transitionConflict)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Transition: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncTransition(string(target), string(actor.Role), transitionApplied)
	s.logger.Info("Transition: appointment id=%d is %s now", id, appointment.Status)

	return models.FromDomainAppointment(appointment), nil
}

// load получает запись и проверяет права доступа участника
func (s *Service) load(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("load: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("load: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}

	if !actor.OwnsAppointment(appointment) {
		s.logger.Warn("load: access denied for %s=%d to appointment id=%d", actor.Role, actor.ID, id)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrActorNotAllowed):
		return ErrAccessDenied
	case errors.Is(err, domain.ErrAppointmentNotPast):
		return ErrAppointmentNotPast
	default:
		return ErrInvalidTransition
	}
}
