package catalog

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Service модель услуги из каталога
type Service struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"business_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	BufferMinutes   int      `json:"buffer_minutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"is_active"`
}

// ToDomain конвертирует модель каталога в доменную услугу
func (s *Service) ToDomain() *domain.Service {
	price := 0.0
	if s.Price != nil {
		price = *s.Price
	}

	return &domain.Service{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		Name:       s.Name,
		Duration:   s.DurationMinutes,
		BufferTime: s.BufferMinutes,
		Price:      price,
		IsActive:   s.IsActive,
	}
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
