package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	gptmodels "hr-scheduler-backend/models/api/gpt"
)

// среда 4 марта 2026
var parserNow = time.Date(2026, 3, 4, 11, 30, 0, 0, time.UTC)

func TestParseFallback(t *testing.T) {
	t.Run(`без сигналов о времени возвращает nil`, func(t *testing.T) {
		require.Nil(t, ParseFallback("I can't make it", parserNow))
		require.Nil(t, ParseFallback("Извините, не получится", parserNow))
	})

	t.Run(`понедельник после обеда на следующей неделе`, func(t *testing.T) {
		window := ParseFallback("Monday afternoon next week", parserNow)
		require.NotNil(t, window)
		require.Equal(t, []string{"monday"}, window.PreferredDays)
		require.NotNil(t, window.PreferredHours)
		require.Equal(t, 12, window.PreferredHours.Start)
		require.Equal(t, 18, window.PreferredHours.End)
		// следующий понедельник — 9 марта, окно до воскресенья 15-го
		require.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), window.StartDate)
		require.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), window.EndDate)
	})

	t.Run(`эта неделя — от сегодня до воскресенья`, func(t *testing.T) {
		window := ParseFallback("any time this week works", parserNow)
		require.NotNil(t, window)
		require.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), window.StartDate)
		require.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), window.EndDate)
	})

	t.Run(`только день недели — окно по умолчанию 14 дней`, func(t *testing.T) {
		window := ParseFallback("лучше в пятницу", parserNow)
		require.NotNil(t, window)
		require.Equal(t, []string{"friday"}, window.PreferredDays)
		require.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), window.StartDate)
		require.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), window.EndDate)
	})

	t.Run(`утро и вечер по ключевым словам`, func(t *testing.T) {
		morning := ParseFallback("morning is fine", parserNow)
		require.NotNil(t, morning)
		require.Equal(t, &calendarapimodels.HourRange{Start: 9, End: 12}, morning.PreferredHours)

		evening := ParseFallback("могу вечером", parserNow)
		require.NotNil(t, evening)
		require.Equal(t, &calendarapimodels.HourRange{Start: 18, End: 21}, evening.PreferredHours)
	})

	t.Run(`два явных времени — min/max`, func(t *testing.T) {
		window := ParseFallback("between 10:00 and 15:00", parserNow)
		require.NotNil(t, window)
		require.Equal(t, &calendarapimodels.HourRange{Start: 10, End: 15}, window.PreferredHours)
	})

	t.Run(`одно явное время — двухчасовое окно`, func(t *testing.T) {
		window := ParseFallback("удобно в 14:00", parserNow)
		require.NotNil(t, window)
		require.Equal(t, &calendarapimodels.HourRange{Start: 14, End: 16}, window.PreferredHours)
	})

	t.Run(`am/pm время`, func(t *testing.T) {
		window := ParseFallback("2pm or 5pm", parserNow)
		require.NotNil(t, window)
		require.Equal(t, &calendarapimodels.HourRange{Start: 14, End: 17}, window.PreferredHours)
	})

	t.Run(`пара дат через точку`, func(t *testing.T) {
		window := ParseFallback("могу с 10.03 по 12.03", parserNow)
		require.NotNil(t, window)
		require.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), window.StartDate)
		require.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), window.EndDate)
	})
}

func TestFromOracle(t *testing.T) {
	t.Run(`валидный ответ оракула`, func(t *testing.T) {
		window, err := FromOracle(gptmodels.ExtractedAvailability{
			StartDate:      "2026-03-09",
			EndDate:        "2026-03-13",
			PreferredHours: &gptmodels.ExtractedHours{Start: 12, End: 18},
			PreferredDays:  []string{"Monday", "wednesday"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"monday", "wednesday"}, window.PreferredDays)
		require.Equal(t, 12, window.PreferredHours.Start)
	})

	t.Run(`нечитаемая дата`, func(t *testing.T) {
		_, err := FromOracle(gptmodels.ExtractedAvailability{StartDate: "завтра", EndDate: "2026-03-13"})
		require.Error(t, err)
	})

	t.Run(`конец раньше начала`, func(t *testing.T) {
		_, err := FromOracle(gptmodels.ExtractedAvailability{StartDate: "2026-03-13", EndDate: "2026-03-09"})
		require.Error(t, err)
	})

	t.Run(`неизвестный день недели`, func(t *testing.T) {
		_, err := FromOracle(gptmodels.ExtractedAvailability{
			StartDate:     "2026-03-09",
			EndDate:       "2026-03-13",
			PreferredDays: []string{"someday"},
		})
		require.Error(t, err)
	})

	t.Run(`некорректный диапазон часов`, func(t *testing.T) {
		_, err := FromOracle(gptmodels.ExtractedAvailability{
			StartDate:      "2026-03-09",
			EndDate:        "2026-03-13",
			PreferredHours: &gptmodels.ExtractedHours{Start: 18, End: 12},
		})
		require.Error(t, err)
	})
}
