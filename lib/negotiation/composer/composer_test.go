package composer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-scheduler-backend/models"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	negotiationapimodels "hr-scheduler-backend/models/api/negotiation"
)

func TestValidateGenerated(t *testing.T) {
	require.True(t, ValidateGenerated("Подобрали для вас время в четверг."))
	require.False(t, ValidateGenerated(""))
	require.False(t, ValidateGenerated("   \n  "))
	require.False(t, ValidateGenerated("```json\n{}\n```"))
	require.False(t, ValidateGenerated(`{"start_date":"2026-03-09"}`))
	require.False(t, ValidateGenerated(strings.Repeat("а", 1001)))
	require.True(t, ValidateGenerated(strings.Repeat("а", 1000)))
}

func TestTemplate(t *testing.T) {
	t.Run(`предложение слотов перечисляет все слоты`, func(t *testing.T) {
		start := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
		composeCtx := negotiationapimodels.ComposeContext{
			ResponseType: models.ResponseTypeSlotSuggestions,
			Slots: []calendarapimodels.Slot{
				{Start: start, End: start.Add(time.Hour)},
				{Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour)},
			},
		}
		text := Template(composeCtx)
		require.Contains(t, text, "1) 09.03.2026 с 14:00 до 15:00")
		require.Contains(t, text, "2) 09.03.2026 с 16:00 до 17:00")
	})

	t.Run(`каждому типу ответа соответствует непустой шаблон`, func(t *testing.T) {
		for _, rt := range []models.ResponseType{
			models.ResponseTypeClarification,
			models.ResponseTypeRequestAlternatives,
			models.ResponseTypeEscalation,
		} {
			text := Template(negotiationapimodels.ComposeContext{ResponseType: rt})
			require.NotEmpty(t, text)
			require.True(t, ValidateGenerated(text))
		}
	})
}
