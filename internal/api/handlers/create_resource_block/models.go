package create_resource_block

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartDate string                `json:"startDate"` // "2025-11-03"
	EndDate   string                `json:"endDate"`   // "2025-11-07" (включительно)
	Interval  *models.IntervalInput `json:"interval,omitempty"`
	Reason    string                `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса (с парсингом дат)
func (r *CreateBlockRequest) ToServiceRequest(resourceID, userID int64) (*models.CreateBlockRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockRequest{
		UserID:     userID,
		ResourceID: resourceID,
		StartDate:  startDate,
		EndDate:    endDate,
		Interval:   r.Interval,
		Reason:     r.Reason,
	}, nil
}
