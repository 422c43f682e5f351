package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end int) Interval {
	t.Helper()
	i, err := NewInterval(start, end)
	require.NoError(t, err)
	return i
}

func TestNewInterval_Validation(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{"valid", 540, 1020, false},
		{"full day", 0, MinutesPerDay, false},
		{"one minute", 0, 1, false},
		{"inverted", 600, 540, true},
		{"empty", 600, 600, true},
		{"negative start", -10, 60, true},
		{"start past midnight", MinutesPerDay, MinutesPerDay + 60, true},
		{"end past midnight", 1380, MinutesPerDay + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInterval(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, 600, 720) // 10:00-12:00

	// Настоящие пересечения
	assert.True(t, base.Overlaps(mustInterval(t, 660, 780)))
	assert.True(t, base.Overlaps(mustInterval(t, 540, 660)))
	assert.True(t, base.Overlaps(mustInterval(t, 630, 690)))
	assert.True(t, base.Overlaps(mustInterval(t, 540, 780)))
	assert.True(t, base.Overlaps(base))

	// Граничащие интервалы не пересекаются (полуоткрытая семантика)
	assert.False(t, base.Overlaps(mustInterval(t, 720, 780)))
	assert.False(t, base.Overlaps(mustInterval(t, 540, 600)))

	// Непересекающиеся
	assert.False(t, base.Overlaps(mustInterval(t, 780, 840)))
	assert.False(t, base.Overlaps(mustInterval(t, 480, 540)))
}

func TestInterval_Contains(t *testing.T) {
	window := mustInterval(t, 540, 1020)

	assert.True(t, window.Contains(mustInterval(t, 540, 1020)))
	assert.True(t, window.Contains(mustInterval(t, 600, 660)))
	assert.False(t, window.Contains(mustInterval(t, 480, 600)))
	assert.False(t, window.Contains(mustInterval(t, 960, 1080)))
}

func TestInterval_String(t *testing.T) {
	assert.Equal(t, "09:00-17:30", mustInterval(t, 540, 1050).String())
	assert.Equal(t, "00:05-24:00", mustInterval(t, 5, MinutesPerDay).String())
}

func TestSubtract_Laws(t *testing.T) {
	window := mustInterval(t, 540, 1020)

	// Subtract(w, []) == [w]
	assert.Equal(t, []Interval{window}, Subtract(window, nil))
	assert.Equal(t, []Interval{window}, Subtract(window, []Interval{}))

	// Subtract(w, [w]) == []
	assert.Empty(t, Subtract(window, []Interval{window}))

	// Вырезание большего интервала тоже дает пустоту
	assert.Empty(t, Subtract(window, []Interval{mustInterval(t, 480, 1080)}))
}

func TestSubtract_SplitsWindow(t *testing.T) {
	window := mustInterval(t, 540, 1020) // 09:00-17:00
	lunch := mustInterval(t, 720, 780)   // 12:00-13:00

	free := Subtract(window, []Interval{lunch})

	require.Len(t, free, 2)
	assert.Equal(t, mustInterval(t, 540, 720), free[0])
	assert.Equal(t, mustInterval(t, 780, 1020), free[1])
}

func TestSubtract_PartialOverlaps(t *testing.T) {
	window := mustInterval(t, 540, 1020)

	// Вырез, выходящий за левую границу окна
	free := Subtract(window, []Interval{mustInterval(t, 480, 600)})
	require.Len(t, free, 1)
	assert.Equal(t, mustInterval(t, 600, 1020), free[0])

	// Вырез, выходящий за правую границу окна
	free = Subtract(window, []Interval{mustInterval(t, 960, 1080)})
	require.Len(t, free, 1)
	assert.Equal(t, mustInterval(t, 540, 960), free[0])

	// Вырез полностью вне окна ничего не меняет
	free = Subtract(window, []Interval{mustInterval(t, 60, 120)})
	assert.Equal(t, []Interval{window}, free)
}

func TestSubtract_UnsortedOverlappingCuts(t *testing.T) {
	window := mustInterval(t, 480, 1080) // 08:00-18:00

	// Неотсортированные и пересекающиеся друг с другом вырезы
	cuts := []Interval{
		mustInterval(t, 840, 900), // 14:00-15:00
		mustInterval(t, 600, 690), // 10:00-11:30
		mustInterval(t, 660, 720), // 11:00-12:00, пересекается с предыдущим
	}

	free := Subtract(window, cuts)

	require.Len(t, free, 3)
	assert.Equal(t, mustInterval(t, 480, 600), free[0])
	assert.Equal(t, mustInterval(t, 720, 840), free[1])
	assert.Equal(t, mustInterval(t, 900, 1080), free[2])
}
