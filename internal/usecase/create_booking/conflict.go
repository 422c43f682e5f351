package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ConflictSource источник конфликта запрошенного интервала
type ConflictSource string

const (
	ConflictSourceBooking ConflictSource = "booking" // пересечение с активным бронированием
	ConflictSourceBreak   ConflictSource = "break"   // пересечение с перерывом расписания
	ConflictSourceBlock   ConflictSource = "block"   // пересечение с блокировкой ресурса
)

// ConflictError несет детали конфликта: с чем именно пересекся запрошенный
// интервал. Оборачивает ErrSlotConflict, поэтому errors.Is(err, ErrSlotConflict)
// продолжает работать у вызывающей стороны
type ConflictError struct {
	Source        ConflictSource  // тип сущности, с которой конфликт
	ConflictingID int64           // ID бронирования или блокировки (0 для перерыва)
	Interval      domain.Interval // интервал конфликтующей сущности
}

// Error возвращает текстовое описание конфликта
func (e *ConflictError) Error() string {
	if e.ConflictingID != 0 {
		return fmt.Sprintf("%v: %s id=%d occupies %s", ErrSlotConflict, e.Source, e.ConflictingID, e.Interval)
	}
	return fmt.Sprintf("%v: %s occupies %s", ErrSlotConflict, e.Source, e.Interval)
}

// Unwrap позволяет errors.Is сопоставить ошибку с ErrSlotConflict
func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}

// findScheduleConflict ищет причину, по которой запрошенный интервал не
// помещается целиком в открытые интервалы дня: сначала блокировки, затем
// перерывы. Если пересечений нет, интервал просто выходит за рабочее окно
// и вызывающая сторона трактует это как ErrResourceClosed
func findScheduleConflict(proposed domain.Interval, day domain.DaySchedule, blocks []*domain.ResourceBlock, date time.Time) error {
	for _, block := range blocks {
		if !block.AppliesTo(date) {
			continue
		}
		if block.IsFullDay() {
			return &ConflictError{
				Source:        ConflictSourceBlock,
				ConflictingID: block.ID,
				Interval:      *day.Window,
			}
		}
		if proposed.Overlaps(*block.Interval) {
			return &ConflictError{
				Source:        ConflictSourceBlock,
				ConflictingID: block.ID,
				Interval:      *block.Interval,
			}
		}
	}

	for _, brk := range day.Breaks {
		if proposed.Overlaps(brk) {
			return &ConflictError{
				Source:   ConflictSourceBreak,
				Interval: brk,
			}
		}
	}

	return ErrResourceClosed
}

// findBookingConflict ищет первое активное бронирование, пересекающееся
// с запрошенным интервалом
func findBookingConflict(proposed domain.Interval, bookings []*domain.Booking) error {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if proposed.Overlaps(b.Interval) {
			return &ConflictError{
				Source:        ConflictSourceBooking,
				ConflictingID: b.ID,
				Interval:      b.Interval,
			}
		}
	}
	return nil
}

// containedInAny проверяет, что интервал целиком лежит в одном из открытых
// интервалов. Открытые интервалы не склеиваются: интервал через перерыв
// не проходит проверку
func containedInAny(proposed domain.Interval, open []domain.Interval) bool {
	for _, window := range open {
		if window.Contains(proposed) {
			return true
		}
	}
	return false
}
