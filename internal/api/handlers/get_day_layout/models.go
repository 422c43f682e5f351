package get_day_layout

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDayLayout "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_layout"
)

// DayLayoutResponse HTTP response model: раскладка дня для календарной сетки
type DayLayoutResponse struct {
	Date       string          `json:"date"`
	ResourceID int64           `json:"resourceId"`
	LaneCount  int             `json:"laneCount"`
	Items      []DayLayoutItem `json:"items"`
}

// DayLayoutItem одно бронирование на дневной сетке
type DayLayoutItem struct {
	BookingID        int64  `json:"bookingId"`
	LaneIndex        int    `json:"laneIndex"`
	TopOffsetMinutes int    `json:"topOffsetMinutes"`
	HeightMinutes    int    `json:"heightMinutes"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	ServiceName      string `json:"serviceName"`
	Status           string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayLayout.Response) *DayLayoutResponse {
	items := make([]DayLayoutItem, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = DayLayoutItem{
			BookingID:        item.BookingID,
			LaneIndex:        item.LaneIndex,
			TopOffsetMinutes: item.TopOffsetMinutes,
			HeightMinutes:    item.HeightMinutes,
			StartTime:        item.StartTime.String(),
			EndTime:          item.EndTime.String(),
			ServiceName:      item.ServiceName,
			Status:           item.Status,
		}
	}

	return &DayLayoutResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		ResourceID: resp.ResourceID,
		LaneCount:  resp.LaneCount,
		Items:      items,
	}
}
