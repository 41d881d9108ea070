package catalog

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг специалистов
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List получает услуги специалиста
// Публично видны только активные услуги, сам специалист видит все
func (s *Service) List(ctx context.Context, professionalID int64, actor *domain.Actor) (*models.ServiceListResponse, error) {
	onlyActive := actor == nil || !actor.IsProfessionalOf(professionalID)
	s.logger.Info("List: fetching services for professional=%d, onlyActive=%t", professionalID, onlyActive)

	services, err := s.serviceRepo.GetByProfessional(ctx, professionalID, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services for professional=%d", len(services), professionalID)
	return models.FromDomainServiceList(services), nil
}

// Create создает услугу специалиста
// Доступно только самому специалисту
func (s *Service) Create(ctx context.Context, professionalID int64, actor domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for professional=%d", req.Name, professionalID)

	if !actor.IsProfessionalOf(professionalID) {
		s.logger.Warn("Create: %s=%d is not professional=%d", actor.Role, actor.ID, professionalID)
		return nil, ErrAccessDenied
	}

	service := req.ToDomainService(professionalID)
	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу специалиста
// Изменение цены или длительности не затрагивает уже созданные записи
func (s *Service) Update(ctx context.Context, professionalID, serviceID int64, actor domain.Actor, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d of professional=%d", serviceID, professionalID)

	if !actor.IsProfessionalOf(professionalID) {
		s.logger.Warn("Update: %s=%d is not professional=%d", actor.Role, actor.ID, professionalID)
		return nil, ErrAccessDenied
	}

	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	if service.ProfessionalID != professionalID {
		s.logger.Warn("Update: service id=%d belongs to professional=%d", serviceID, service.ProfessionalID)
		return nil, ErrServiceNotFound
	}

	req.ApplyTo(service)
	if err := validateService(service); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", serviceID)
	return models.FromDomainService(updated), nil
}

func validateService(service *domain.Service) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if utf8.RuneCountInString(service.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	return nil
}
