package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID  int64   `json:"resourceId"`
	ServiceID   int64   `json:"serviceId"`
	CampaignID  *int64  `json:"campaignId,omitempty"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	ResourceID      int64   `json:"resourceId"`
	ServiceID       int64   `json:"serviceId"`
	CampaignID      *int64  `json:"campaignId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ConflictDetails детали конфликта слота для ответа 409
type ConflictDetails struct {
	Source        string `json:"source"` // booking | break | block
	ConflictingID *int64 `json:"conflictingId,omitempty"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// ConflictResponse тело ответа 409 с деталями конфликта
type ConflictResponse struct {
	Error    string          `json:"error"`
	Conflict ConflictDetails `json:"conflict"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:     userID,
		ResourceID: r.ResourceID,
		ServiceID:  r.ServiceID,
		CampaignID: r.CampaignID,
		Date:       bookingDate,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ResourceID:      resp.ResourceID,
		ServiceID:       resp.ServiceID,
		CampaignID:      resp.CampaignID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflictError конвертирует доменный конфликт слота в тело ответа 409
func FromConflictError(message string, conflict *createBooking.ConflictError) *ConflictResponse {
	details := ConflictDetails{
		Source:    string(conflict.Source),
		StartTime: formatMinutes(conflict.Interval.StartMinute),
		EndTime:   formatMinutes(conflict.Interval.EndMinute),
	}

	if conflict.ConflictingID != 0 {
		id := conflict.ConflictingID
		details.ConflictingID = &id
	}

	return &ConflictResponse{
		Error:    message,
		Conflict: details,
	}
}

// formatMinutes форматирует минуты от полуночи в "HH:MM"
func formatMinutes(minutes int) string {
	ts, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return ""
	}
	return ts.String()
}
