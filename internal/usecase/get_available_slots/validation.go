package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.CampaignID != nil && *req.CampaignID <= 0 {
		return fmt.Errorf("%w: campaignID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(requestDate time.Time, now time.Time) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// validateServiceOnResource проверяет, что услуга выполняется этим ресурсом
func validateServiceOnResource(service *catalogservice.Service, resourceID int64) error {
	for _, id := range service.ResourceIDs {
		if id == resourceID {
			return nil
		}
	}
	return ErrServiceNotAvailableOnResource
}

// validateCampaignForService проверяет, что кампания привязана к запрошенной услуге
func validateCampaignForService(campaign *catalogservice.Campaign, serviceID int64) error {
	if campaign.LinkedServiceID != serviceID {
		return ErrCampaignNotLinked
	}
	return nil
}
