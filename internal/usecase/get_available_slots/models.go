package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	ResourceID int64     // ID ресурса (специалиста)
	ServiceID  int64     // ID услуги
	CampaignID *int64    // ID принятой промо-кампании (опционально)
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date               time.Time // Дата, на которую запрашивались слоты
	ResourceID         int64     // ID ресурса
	ServiceID          int64     // ID услуги
	DurationMinutes    int       // Эффективная длительность слота
	GranularityMinutes int       // Шаг генерации слотов
	Slots              []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	EndTime     types.TimeString // Время окончания слота
	StartMinute int              // Время начала в минутах от полуночи
}
