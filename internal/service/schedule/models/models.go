package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// CreateBlockRequest запрос на создание блока расписания
type CreateBlockRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "13:00"
	Active    *bool  `json:"active,omitempty"`
}

// UpdateBlockRequest запрос на обновление блока расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateBlockRequest struct {
	DayOfWeek *int    `json:"dayOfWeek,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// ToDomainBlock конвертирует request в domain модель
func (r *CreateBlockRequest) ToDomainBlock(professionalID int64) (*domain.WeeklyScheduleBlock, error) {
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &domain.WeeklyScheduleBlock{
		ProfessionalID: professionalID,
		DayOfWeek:      time.Weekday(r.DayOfWeek),
		StartTime:      start,
		EndTime:        end,
		Active:         active,
	}, nil
}

// ApplyTo применяет переданные поля к блоку
func (r *UpdateBlockRequest) ApplyTo(block *domain.WeeklyScheduleBlock) error {
	if r.DayOfWeek != nil {
		block.DayOfWeek = time.Weekday(*r.DayOfWeek)
	}
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return fmt.Errorf("startTime: %w", err)
		}
		block.StartTime = start
	}
	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return fmt.Errorf("endTime: %w", err)
		}
		block.EndTime = end
	}
	if r.Active != nil {
		block.Active = *r.Active
	}
	return nil
}

// Response модели

// BlockResponse ответ с данными блока расписания
type BlockResponse struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professionalId"`
	DayOfWeek      int       `json:"dayOfWeek"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ScheduleResponse ответ с недельным расписанием специалиста
type ScheduleResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	Blocks         []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.WeeklyScheduleBlock) *BlockResponse {
	if b == nil {
		return nil
	}

	return &BlockResponse{
		ID:             b.ID,
		ProfessionalID: b.ProfessionalID,
		DayOfWeek:      int(b.DayOfWeek),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		Active:         b.Active,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// FromDomainSchedule конвертирует список блоков в DTO
func FromDomainSchedule(professionalID int64, blocks []*domain.WeeklyScheduleBlock) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProfessionalID: professionalID,
		Blocks:         make([]BlockResponse, 0, len(blocks)),
	}

	for _, block := range blocks {
		if blockResp := FromDomainBlock(block); blockResp != nil {
			resp.Blocks = append(resp.Blocks, *blockResp)
		}
	}

	return resp
}
