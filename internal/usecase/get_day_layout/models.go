package get_day_layout

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на раскладку дня
type Request struct {
	ResourceID int64     // ID ресурса (специалиста)
	Date       time.Time // Дата (без времени)
}

// Response модель ответа с раскладкой дня для календарного отображения
type Response struct {
	Date       time.Time // Дата раскладки
	ResourceID int64     // ID ресурса
	LaneCount  int       // Количество дорожек (максимальная глубина наложения)
	Items      []Item    // Элементы раскладки, отсортированы по времени начала
}

// Item элемент раскладки: одно бронирование на дневной сетке
type Item struct {
	BookingID        int64            // ID бронирования
	LaneIndex        int              // Индекс дорожки (0-based)
	TopOffsetMinutes int              // Отступ сверху в минутах от полуночи
	HeightMinutes    int              // Высота в минутах (длительность)
	StartTime        types.TimeString // Время начала
	EndTime          types.TimeString // Время окончания
	ServiceName      string           // Название услуги
	Status           string           // Статус бронирования
}
