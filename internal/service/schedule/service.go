package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

// Service сервис для работы с недельным расписанием специалистов
// Расписание специалиста пустое, пока он сам не добавит блоки
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// List получает расписание специалиста
// Публично видны только активные блоки, сам специалист видит все
func (s *Service) List(ctx context.Context, professionalID int64, actor *domain.Actor) (*models.ScheduleResponse, error) {
	onlyActive := actor == nil || !actor.IsProfessionalOf(professionalID)
	s.logger.Info("List: fetching schedule for professional=%d, onlyActive=%t", professionalID, onlyActive)

	blocks, err := s.scheduleRepo.GetByProfessional(ctx, professionalID, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blocks for professional=%d", len(blocks), professionalID)
	return models.FromDomainSchedule(professionalID, blocks), nil
}

// Create создает блок расписания
// Доступно только самому специалисту
func (s *Service) Create(ctx context.Context, professionalID int64, actor domain.Actor, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: creating block day=%d %s-%s for professional=%d",
		req.DayOfWeek, req.StartTime, req.EndTime, professionalID)

	if !actor.IsProfessionalOf(professionalID) {
		s.logger.Warn("Create: %s=%d is not professional=%d", actor.Role, actor.ID, professionalID)
		return nil, ErrAccessDenied
	}

	block, err := req.ToDomainBlock(professionalID)
	if err != nil {
		s.logger.Warn("Create: invalid block: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.WeeklyScheduleBlock
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkBlock(txCtx, block); err != nil {
			return err
		}

		created, err = s.scheduleRepo.Create(txCtx, block)
		if err != nil {
			return s.mapRepoError("Create", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created block id=%d", created.ID)
	return models.FromDomainBlock(created), nil
}

// Update обновляет блок расписания
// Доступно только специалисту, которому принадлежит блок
func (s *Service) Update(ctx context.Context, professionalID, blockID int64, actor domain.Actor, req *models.UpdateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Update: updating block id=%d of professional=%d", blockID, professionalID)

	if !actor.IsProfessionalOf(professionalID) {
		s.logger.Warn("Update: %s=%d is not professional=%d", actor.Role, actor.ID, professionalID)
		return nil, ErrAccessDenied
	}

	var updated *domain.WeeklyScheduleBlock
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		block, err := s.getOwnBlock(txCtx, professionalID, blockID)
		if err != nil {
			return err
		}

		if err := req.ApplyTo(block); err != nil {
			s.logger.Warn("Update: invalid block: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.checkBlock(txCtx, block); err != nil {
			return err
		}

		updated, err = s.scheduleRepo.Update(txCtx, block)
		if err != nil {
			return s.mapRepoError("Update", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated block id=%d", blockID)
	return models.FromDomainBlock(updated), nil
}

// Delete удаляет блок расписания
// Существующие записи не затрагиваются, новые слоты из блока больше не генерируются
func (s *Service) Delete(ctx context.Context, professionalID, blockID int64, actor domain.Actor) error {
	s.logger.Info("Delete: deleting block id=%d of professional=%d", blockID, professionalID)

	if !actor.IsProfessionalOf(professionalID) {
		s.logger.Warn("Delete: %s=%d is not professional=%d", actor.Role, actor.ID, professionalID)
		return ErrAccessDenied
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getOwnBlock(txCtx, professionalID, blockID); err != nil {
			return err
		}
		if err := s.scheduleRepo.Delete(txCtx, blockID); err != nil {
			return s.mapRepoError("Delete", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted block id=%d", blockID)
	return nil
}

// checkBlock проверяет инварианты блока и отсутствие пересечений с другими активными блоками
func (s *Service) checkBlock(ctx context.Context, block *domain.WeeklyScheduleBlock) error {
	if err := block.Validate(); err != nil {
		s.logger.Warn("checkBlock: validation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.scheduleRepo.GetByProfessional(ctx, block.ProfessionalID, true)
	if err != nil {
		s.logger.Error("checkBlock: repository error for professional=%d: %v", block.ProfessionalID, err)
		return fmt.Errorf("%w: checkBlock - repository error: %v", ErrInternal, err)
	}

	if err := domain.CheckNoOverlap(block, existing); err != nil {
		s.logger.Warn("checkBlock: %v", err)
		return fmt.Errorf("%w: %v", ErrBlockOverlap, err)
	}

	return nil
}

// getOwnBlock получает блок и проверяет, что он принадлежит специалисту
func (s *Service) getOwnBlock(ctx context.Context, professionalID, blockID int64) (*domain.WeeklyScheduleBlock, error) {
	block, err := s.scheduleRepo.GetByID(ctx, blockID)
	if err != nil {
		return nil, s.mapRepoError("getOwnBlock", err)
	}
	if block.ProfessionalID != professionalID {
		s.logger.Warn("getOwnBlock: block id=%d belongs to professional=%d", blockID, block.ProfessionalID)
		return nil, ErrBlockNotFound
	}
	return block, nil
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, scheduleRepo.ErrBlockNotFound):
		s.logger.Warn("%s: block not found", op)
		return ErrBlockNotFound
	case errors.Is(err, scheduleRepo.ErrBlockOverlap):
		s.logger.Warn("%s: block overlaps another active block", op)
		return ErrBlockOverlap
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
