package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном времени в запросе
	ErrInvalidTime = errors.New("invalid time value")
)

// Request модели

// IntervalInput интервал "HH:MM"-"HH:MM" в запросе
type IntervalInput struct {
	StartTime string `json:"startTime"` // "12:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// ToDomain конвертирует входной интервал в доменный с валидацией
func (i *IntervalInput) ToDomain() (domain.Interval, error) {
	start, err := parseMinutes(i.StartTime)
	if err != nil {
		return domain.Interval{}, err
	}
	end, err := parseMinutes(i.EndTime)
	if err != nil {
		return domain.Interval{}, err
	}
	return domain.NewInterval(start, end)
}

// DayScheduleInput расписание одного дня недели в запросе
type DayScheduleInput struct {
	IsOpen    bool            `json:"isOpen"`
	OpenTime  *string         `json:"openTime,omitempty"`  // "09:00", обязательно при isOpen
	CloseTime *string         `json:"closeTime,omitempty"` // "18:00", обязательно при isOpen
	Breaks    []IntervalInput `json:"breaks,omitempty"`
}

// ToDomain конвертирует входное расписание дня в доменное с валидацией
func (d *DayScheduleInput) ToDomain() (domain.DaySchedule, error) {
	if !d.IsOpen {
		return domain.DaySchedule{IsOpen: false}, nil
	}

	if d.OpenTime == nil || d.CloseTime == nil {
		return domain.DaySchedule{}, fmt.Errorf("%w: openTime and closeTime are required for an open day", ErrInvalidTime)
	}

	window, err := (&IntervalInput{StartTime: *d.OpenTime, EndTime: *d.CloseTime}).ToDomain()
	if err != nil {
		return domain.DaySchedule{}, err
	}

	day := domain.DaySchedule{
		IsOpen: true,
		Window: &window,
	}

	for _, brk := range d.Breaks {
		interval, err := brk.ToDomain()
		if err != nil {
			return domain.DaySchedule{}, err
		}
		day.Breaks = append(day.Breaks, interval)
	}

	return day, nil
}

// UpdateScheduleRequest запрос на полную замену недельного расписания ресурса
type UpdateScheduleRequest struct {
	UserID     int64            `json:"userId"`
	ResourceID int64            `json:"resourceId"`
	Monday     DayScheduleInput `json:"monday"`
	Tuesday    DayScheduleInput `json:"tuesday"`
	Wednesday  DayScheduleInput `json:"wednesday"`
	Thursday   DayScheduleInput `json:"thursday"`
	Friday     DayScheduleInput `json:"friday"`
	Saturday   DayScheduleInput `json:"saturday"`
	Sunday     DayScheduleInput `json:"sunday"`
}

// Days возвращает дни недели запроса в порядке time.Weekday
func (r *UpdateScheduleRequest) Days() map[time.Weekday]DayScheduleInput {
	return map[time.Weekday]DayScheduleInput{
		time.Monday:    r.Monday,
		time.Tuesday:   r.Tuesday,
		time.Wednesday: r.Wednesday,
		time.Thursday:  r.Thursday,
		time.Friday:    r.Friday,
		time.Saturday:  r.Saturday,
		time.Sunday:    r.Sunday,
	}
}

// CreateBlockRequest запрос на создание блокировки ресурса
type CreateBlockRequest struct {
	UserID     int64          `json:"userId"`
	ResourceID int64          `json:"resourceId"`
	StartDate  time.Time      `json:"startDate"`          // Первый день блокировки
	EndDate    time.Time      `json:"endDate"`            // Последний день (включительно)
	Interval   *IntervalInput `json:"interval,omitempty"` // nil = блокировка на весь день
	Reason     string         `json:"reason"`
}

// Response модели

// DayScheduleResponse расписание одного дня недели в ответе
type DayScheduleResponse struct {
	IsOpen    bool               `json:"isOpen"`
	OpenTime  *string            `json:"openTime,omitempty"`
	CloseTime *string            `json:"closeTime,omitempty"`
	Breaks    []IntervalResponse `json:"breaks,omitempty"`
}

// IntervalResponse интервал в ответе
type IntervalResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduleResponse недельное расписание ресурса
type ScheduleResponse struct {
	ResourceID int64               `json:"resourceId"`
	IsDefault  bool                `json:"isDefault"` // true, если расписание не настроено и действует дефолтное окно
	Monday     DayScheduleResponse `json:"monday"`
	Tuesday    DayScheduleResponse `json:"tuesday"`
	Wednesday  DayScheduleResponse `json:"wednesday"`
	Thursday   DayScheduleResponse `json:"thursday"`
	Friday     DayScheduleResponse `json:"friday"`
	Saturday   DayScheduleResponse `json:"saturday"`
	Sunday     DayScheduleResponse `json:"sunday"`
}

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID         int64             `json:"id"`
	ResourceID int64             `json:"resourceId"`
	StartDate  string            `json:"startDate"` // "2025-11-03"
	EndDate    string            `json:"endDate"`
	Interval   *IntervalResponse `json:"interval,omitempty"` // nil = весь день
	Reason     string            `json:"reason"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainWeekSchedule конвертирует доменное недельное расписание в DTO
func FromDomainWeekSchedule(week *domain.WeekSchedule, isDefault bool) *ScheduleResponse {
	if week == nil {
		return nil
	}

	return &ScheduleResponse{
		ResourceID: week.ResourceID,
		IsDefault:  isDefault,
		Monday:     fromDomainDay(week.Monday),
		Tuesday:    fromDomainDay(week.Tuesday),
		Wednesday:  fromDomainDay(week.Wednesday),
		Thursday:   fromDomainDay(week.Thursday),
		Friday:     fromDomainDay(week.Friday),
		Saturday:   fromDomainDay(week.Saturday),
		Sunday:     fromDomainDay(week.Sunday),
	}
}

// FromDomainBlock конвертирует доменную блокировку в DTO
func FromDomainBlock(b *domain.ResourceBlock) *BlockResponse {
	if b == nil {
		return nil
	}

	resp := &BlockResponse{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		StartDate:  b.StartDate.Format(domain.DateFormat),
		EndDate:    b.EndDate.Format(domain.DateFormat),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}

	if b.Interval != nil {
		resp.Interval = &IntervalResponse{
			StartTime: formatMinutes(b.Interval.StartMinute),
			EndTime:   formatMinutes(b.Interval.EndMinute),
		}
	}

	return resp
}

// FromDomainBlockList конвертирует список доменных блокировок в DTO
func FromDomainBlockList(blocks []*domain.ResourceBlock) *BlockListResponse {
	resp := &BlockListResponse{
		Blocks: make([]BlockResponse, 0, len(blocks)),
	}

	for _, block := range blocks {
		if blockResp := FromDomainBlock(block); blockResp != nil {
			resp.Blocks = append(resp.Blocks, *blockResp)
		}
	}

	return resp
}

// fromDomainDay конвертирует доменное расписание дня в DTO
func fromDomainDay(day domain.DaySchedule) DayScheduleResponse {
	resp := DayScheduleResponse{IsOpen: day.IsOpen}

	if day.IsOpen && day.Window != nil {
		open := formatMinutes(day.Window.StartMinute)
		closeTime := formatMinutes(day.Window.EndMinute)
		resp.OpenTime = &open
		resp.CloseTime = &closeTime
	}

	for _, brk := range day.Breaks {
		resp.Breaks = append(resp.Breaks, IntervalResponse{
			StartTime: formatMinutes(brk.StartMinute),
			EndTime:   formatMinutes(brk.EndMinute),
		})
	}

	return resp
}

// parseMinutes парсит "HH:MM" в минуты от полуночи
// "24:00" допустимо как конец интервала
func parseMinutes(s string) (int, error) {
	if s == "24:00" {
		return 24 * 60, nil
	}

	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	minutes, err := ts.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return minutes, nil
}

// formatMinutes форматирует минуты от полуночи в "HH:MM"
func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
