package get_available_slots

import (
	"fmt"
	"iter"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// buildSlots материализует ленивую последовательность стартовых минут
// в модели слотов для ответа
func buildSlots(starts iter.Seq[int], durationMinutes int) ([]Slot, error) {
	slots := make([]Slot, 0)

	for start := range starts {
		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format slot start %d: %v", ErrInternal, start, err)
		}

		endTime, err := types.NewTimeStringFromMinutes(start + durationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format slot end %d: %v", ErrInternal, start+durationMinutes, err)
		}

		slots = append(slots, Slot{
			StartTime:   startTime,
			EndTime:     endTime,
			StartMinute: start,
		})
	}

	return slots, nil
}
