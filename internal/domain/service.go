package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ServiceStatus represents whether a service is offered for booking
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

// Service represents an offering of a professional
type Service struct {
	ID                int64
	ProfessionalID    int64
	Name              string
	Description       string
	Category          string
	Price             float64
	DurationMinutes   int
	DepositPercentage int // 0 = no deposit required
	Status            ServiceStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive returns true if the service is offered for booking
func (s *Service) IsActive() bool {
	return s.Status == ServiceActive
}

// RequiresDeposit returns true if booking must go through the payment hand-off
func (s *Service) RequiresDeposit() bool {
	return s.DepositPercentage > 0
}

// DepositAmount returns the deposit rounded to cents
func (s *Service) DepositAmount() float64 {
	if !s.RequiresDeposit() {
		return 0
	}
	return math.Round(s.Price*float64(s.DepositPercentage)) / 100
}

// Validate checks the service invariants
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidService)
	}
	if s.DurationMinutes <= 0 || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be in (0, %d]", ErrInvalidService, MaxServiceDurationMinutes)
	}
	if s.DepositPercentage < MinDepositPercentage || s.DepositPercentage > MaxDepositPercentage {
		return fmt.Errorf("%w: depositPercentage must be in [%d, %d]",
			ErrInvalidService, MinDepositPercentage, MaxDepositPercentage)
	}
	if s.Status != ServiceActive && s.Status != ServiceInactive {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidService, s.Status)
	}
	return nil
}
