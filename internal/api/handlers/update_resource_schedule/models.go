package update_resource_schedule

import (
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model: полное недельное расписание
type UpdateScheduleRequest struct {
	Monday    models.DayScheduleInput `json:"monday"`
	Tuesday   models.DayScheduleInput `json:"tuesday"`
	Wednesday models.DayScheduleInput `json:"wednesday"`
	Thursday  models.DayScheduleInput `json:"thursday"`
	Friday    models.DayScheduleInput `json:"friday"`
	Saturday  models.DayScheduleInput `json:"saturday"`
	Sunday    models.DayScheduleInput `json:"sunday"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(resourceID, userID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:     userID,
		ResourceID: resourceID,
		Monday:     r.Monday,
		Tuesday:    r.Tuesday,
		Wednesday:  r.Wednesday,
		Thursday:   r.Thursday,
		Friday:     r.Friday,
		Saturday:   r.Saturday,
		Sunday:     r.Sunday,
	}
}
