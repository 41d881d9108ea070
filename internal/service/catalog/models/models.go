package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	Category          string  `json:"category,omitempty"`
	Price             float64 `json:"price"`
	DurationMinutes   int     `json:"durationMinutes"`
	DepositPercentage int     `json:"depositPercentage"` // 0 = без депозита
	Active            *bool   `json:"active,omitempty"`  // По умолчанию true
}

// UpdateServiceRequest запрос на обновление услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	DurationMinutes   *int     `json:"durationMinutes,omitempty"`
	DepositPercentage *int     `json:"depositPercentage,omitempty"`
	Active            *bool    `json:"active,omitempty"`
}

// ToDomainService конвертирует request в domain модель
func (r *CreateServiceRequest) ToDomainService(professionalID int64) *domain.Service {
	status := domain.ServiceActive
	if r.Active != nil && !*r.Active {
		status = domain.ServiceInactive
	}

	return &domain.Service{
		ProfessionalID:    professionalID,
		Name:              strings.TrimSpace(r.Name),
		Description:       r.Description,
		Category:          r.Category,
		Price:             r.Price,
		DurationMinutes:   r.DurationMinutes,
		DepositPercentage: r.DepositPercentage,
		Status:            status,
	}
}

// ApplyTo применяет переданные поля к услуге
func (r *UpdateServiceRequest) ApplyTo(service *domain.Service) {
	if r.Name != nil {
		service.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		service.Description = *r.Description
	}
	if r.Category != nil {
		service.Category = *r.Category
	}
	if r.Price != nil {
		service.Price = *r.Price
	}
	if r.DurationMinutes != nil {
		service.DurationMinutes = *r.DurationMinutes
	}
	if r.DepositPercentage != nil {
		service.DepositPercentage = *r.DepositPercentage
	}
	if r.Active != nil {
		service.Status = domain.ServiceInactive
		if *r.Active {
			service.Status = domain.ServiceActive
		}
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                int64     `json:"id"`
	ProfessionalID    int64     `json:"professionalId"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Category          string    `json:"category,omitempty"`
	Price             float64   `json:"price"`
	DurationMinutes   int       `json:"durationMinutes"`
	DepositPercentage int       `json:"depositPercentage"`
	DepositAmount     float64   `json:"depositAmount"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:                s.ID,
		ProfessionalID:    s.ProfessionalID,
		Name:              s.Name,
		Description:       s.Description,
		Category:          s.Category,
		Price:             s.Price,
		DurationMinutes:   s.DurationMinutes,
		DepositPercentage: s.DepositPercentage,
		DepositAmount:     s.DepositAmount(),
		Status:            string(s.Status),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, service := range services {
		if serviceResp := FromDomainService(service); serviceResp != nil {
			resp.Services = append(resp.Services, *serviceResp)
		}
	}

	return resp
}
