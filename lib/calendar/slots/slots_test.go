package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
)

func TestGenerate(t *testing.T) {
	t.Run(`по 9 часовых слотов на будний день, выходные пустые`, func(t *testing.T) {
		// понедельник 2 марта 2026 — воскресенье 8 марта
		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		list := Generate(start, end, 60, 9, 18)
		require.Len(t, list, 45) // 5 будних дней по 9 слотов

		perDay := map[time.Weekday]int{}
		for _, slot := range list {
			perDay[slot.Start.Weekday()]++
			require.Equal(t, time.Hour, slot.End.Sub(slot.Start))
			require.GreaterOrEqual(t, slot.Start.Hour(), 9)
			require.True(t, slot.End.Hour() < 18 || (slot.End.Hour() == 18 && slot.End.Minute() == 0))
		}
		require.Equal(t, 0, perDay[time.Saturday])
		require.Equal(t, 0, perDay[time.Sunday])
		for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
			require.Equal(t, 9, perDay[day])
		}
	})

	t.Run(`слоты упорядочены и не пересекаются`, func(t *testing.T) {
		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
		list := Generate(start, end, 60, 9, 18)
		for j := 1; j < len(list); j++ {
			require.True(t, list[j].Start.After(list[j-1].Start))
			require.False(t, list[j].Start.Before(list[j-1].End))
		}
	})

	t.Run(`последний блок не вылезает за конец рабочего дня`, func(t *testing.T) {
		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
		// 50-минутные блоки: 10 целиком помещается в 9 часов, 11-й уже нет
		list := Generate(start, end, 50, 9, 18)
		require.Len(t, list, 10)
		last := list[len(list)-1]
		require.False(t, last.End.After(time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)))
	})

	t.Run(`детерминированность`, func(t *testing.T) {
		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		require.Equal(t, Generate(start, end, 60, 9, 18), Generate(start, end, 60, 9, 18))
	})
}

func TestMatch(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	grid := Generate(start, end, 60, 9, 18)

	t.Run(`без ограничений возвращает все слоты в исходном порядке`, func(t *testing.T) {
		window := calendarapimodels.AvailabilityWindow{StartDate: start, EndDate: end}
		require.Equal(t, grid, Match(grid, window))
	})

	t.Run(`фильтр по дням недели`, func(t *testing.T) {
		window := calendarapimodels.AvailabilityWindow{
			StartDate:     start,
			EndDate:       end,
			PreferredDays: []string{"Monday", "wednesday"},
		}
		matched := Match(grid, window)
		require.NotEmpty(t, matched)
		for _, slot := range matched {
			day := slot.Start.Weekday()
			require.True(t, day == time.Monday || day == time.Wednesday)
		}
	})

	t.Run(`фильтр по диапазону часов, конец диапазона исключен`, func(t *testing.T) {
		window := calendarapimodels.AvailabilityWindow{
			StartDate:      start,
			EndDate:        end,
			PreferredHours: &calendarapimodels.HourRange{Start: 12, End: 18},
		}
		for _, slot := range Match(grid, window) {
			require.GreaterOrEqual(t, slot.Start.Hour(), 12)
			require.Less(t, slot.Start.Hour(), 18)
		}
	})

	t.Run(`слоты вне диапазона дат отбрасываются`, func(t *testing.T) {
		window := calendarapimodels.AvailabilityWindow{
			StartDate: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 5, 23, 0, 0, 0, time.UTC),
		}
		matched := Match(grid, window)
		require.NotEmpty(t, matched)
		for _, slot := range matched {
			require.False(t, slot.Start.Before(window.StartDate))
			require.True(t, slot.Start.Before(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)))
		}
	})

	t.Run(`последний день окна входит целиком даже при полуночном конце`, func(t *testing.T) {
		// кандидат назвал диапазон пн 2 — чт 5 марта, парсер отдает полночь четверга
		window := calendarapimodels.AvailabilityWindow{
			StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		}
		matched := Match(grid, window)
		require.Len(t, matched, 36) // 4 будних дня по 9 слотов
		perDay := map[int]int{}
		for _, slot := range matched {
			perDay[slot.Start.Day()]++
		}
		require.Equal(t, 9, perDay[5], "слоты четверга не должны отсекаться")
		require.Equal(t, 0, perDay[6])
	})

	t.Run(`стабильный фильтр не меняет порядок`, func(t *testing.T) {
		window := calendarapimodels.AvailabilityWindow{
			StartDate:     start,
			EndDate:       end,
			PreferredDays: []string{"tuesday", "friday"},
		}
		matched := Match(grid, window)
		for j := 1; j < len(matched); j++ {
			require.True(t, matched[j].Start.After(matched[j-1].Start))
		}
	})
}

func TestOverlap(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slot := calendarapimodels.Slot{Start: base, End: base.Add(time.Hour)}

	require.True(t, Overlap(slot, calendarapimodels.BusyInterval{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)}))
	require.True(t, Overlap(slot, calendarapimodels.BusyInterval{Start: base.Add(-30 * time.Minute), End: base.Add(30 * time.Minute)}))
	// граничное касание пересечением не считается
	require.False(t, Overlap(slot, calendarapimodels.BusyInterval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}))
	require.False(t, Overlap(slot, calendarapimodels.BusyInterval{Start: base.Add(-time.Hour), End: base}))
}
