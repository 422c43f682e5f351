package domain

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSlots(t *testing.T, open, busy []Interval, duration, granularity int) []int {
	t.Helper()
	seq, err := GenerateSlots(open, busy, duration, granularity)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	open := []Interval{mustInterval(t, 540, 1020)}

	_, err := GenerateSlots(open, nil, 0, 30)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(open, nil, -30, 30)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(open, nil, 30, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlots_RespectsBreakBoundary(t *testing.T) {
	// Открыто 09:00-17:00 с перерывом 12:00-13:00, услуга 90 минут, шаг 30
	day := workingDay(t, 540, 1020, mustInterval(t, 720, 780))
	open := OpenIntervals(day, nil, date(2025, time.November, 3))

	starts := collectSlots(t, open, nil, 90, 30)

	// До перерыва услуга должна закончиться к 12:00: последний допустимый старт 10:30
	// 11:00 (конец 12:30) пересекает перерыв и исключен
	assert.Contains(t, starts, 540) // 09:00
	assert.Contains(t, starts, 630) // 10:30, конец ровно 12:00
	assert.NotContains(t, starts, 660) // 11:00
	assert.NotContains(t, starts, 690) // 11:30

	// После перерыва слоты идут с 13:00, последний старт 15:30 (конец 17:00)
	assert.Contains(t, starts, 780) // 13:00
	assert.Contains(t, starts, 930) // 15:30
	assert.NotContains(t, starts, 960) // 16:00, конец 17:30 за пределами окна

	expected := []int{540, 570, 600, 630, 780, 810, 840, 870, 900, 930}
	assert.Equal(t, expected, starts)
}

func TestGenerateSlots_ExcludesBookedRanges(t *testing.T) {
	open := []Interval{mustInterval(t, 540, 720)} // 09:00-12:00
	busy := []Interval{mustInterval(t, 600, 660)} // бронь 10:00-11:00

	starts := collectSlots(t, open, busy, 60, 30)

	// 09:00 заканчивается ровно в 10:00 - границы не конфликтуют
	// 11:00 начинается ровно в конце брони - тоже допустим
	assert.Equal(t, []int{540, 660}, starts)
}

func TestGenerateSlots_DurationLongerThanAnyInterval(t *testing.T) {
	// Два окна по 2 часа, суммарно 4 часа, но услуга 3 часа не помещается
	// ни в одно - окна никогда не склеиваются через перерыв
	open := []Interval{
		mustInterval(t, 540, 660), // 09:00-11:00
		mustInterval(t, 720, 840), // 12:00-14:00
	}

	starts := collectSlots(t, open, nil, 180, 30)
	assert.Empty(t, starts)
}

func TestGenerateSlots_ExactFit(t *testing.T) {
	// Услуга ровно в размер окна - единственный слот в его начале
	open := []Interval{mustInterval(t, 540, 630)}

	starts := collectSlots(t, open, nil, 90, 30)
	assert.Equal(t, []int{540}, starts)
}

func TestGenerateSlots_Restartable(t *testing.T) {
	open := []Interval{mustInterval(t, 540, 720)}
	seq, err := GenerateSlots(open, nil, 60, 30)
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	// Повторный проход по последовательности дает тот же результат
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestGenerateSlots_LazyEarlyStop(t *testing.T) {
	open := []Interval{mustInterval(t, 540, 1020)}
	seq, err := GenerateSlots(open, nil, 30, 30)
	require.NoError(t, err)

	// Достаточно первого кандидата - генерация останавливается
	for start := range seq {
		assert.Equal(t, 540, start)
		break
	}
}

func TestGenerateSlots_AscendingOrder(t *testing.T) {
	day := workingDay(t, 480, 1080, mustInterval(t, 720, 780))
	open := OpenIntervals(day, nil, date(2025, time.November, 3))

	starts := collectSlots(t, open, nil, 30, 15)
	assert.True(t, slices.IsSorted(starts))
}

func TestActiveIntervals(t *testing.T) {
	bookings := []*Booking{
		{ID: 1, Interval: mustInterval(t, 540, 600), Status: StatusConfirmed},
		{ID: 2, Interval: mustInterval(t, 600, 660), Status: StatusCancelledByUser},
		{ID: 3, Interval: mustInterval(t, 660, 720), Status: StatusNoShow},
		{ID: 4, Interval: mustInterval(t, 720, 780), Status: StatusInProgress},
	}

	intervals := ActiveIntervals(bookings)

	// Отмененные и no-show освобождают свое время
	require.Len(t, intervals, 2)
	assert.Equal(t, mustInterval(t, 540, 600), intervals[0])
	assert.Equal(t, mustInterval(t, 720, 780), intervals[1])
}
