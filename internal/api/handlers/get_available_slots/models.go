package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date               string          `json:"date"`
	ResourceID         int64           `json:"resourceId"`
	ServiceID          int64           `json:"serviceId"`
	DurationMinutes    int             `json:"durationMinutes"`
	GranularityMinutes int             `json:"granularityMinutes"`
	Slots              []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		ResourceID:         resp.ResourceID,
		ServiceID:          resp.ServiceID,
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(resourceID, serviceID int64, campaignIDStr, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		ResourceID: resourceID,
		ServiceID:  serviceID,
		Date:       date,
	}

	// Парсим campaignId если указан
	if campaignIDStr != "" {
		campaignID, err := strconv.ParseInt(campaignIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CampaignID = &campaignID
	}

	return req, nil
}
