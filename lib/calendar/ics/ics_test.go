package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
)

func TestGenerate(t *testing.T) {
	start := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	req := calendarapimodels.EventRequest{
		Summary:     "Собеседование: Иванов Иван",
		Description: "Вакансия: Go разработчик",
		Start:       start,
		End:         start.Add(time.Hour),
		Attendees: []calendarapimodels.EventAttendee{
			{Email: "ivanov@example.com", Name: "Иванов Иван"},
			{Email: "recruiter@example.com", Name: "Петрова Анна"},
		},
	}

	body, uid := Generate(req)
	text := string(body)

	t.Run(`структура календаря`, func(t *testing.T) {
		require.True(t, strings.HasPrefix(text, "BEGIN:VCALENDAR\r\n"))
		require.True(t, strings.HasSuffix(text, "END:VCALENDAR\r\n"))
		require.Contains(t, text, "VERSION:2.0\r\n")
		require.Contains(t, text, "BEGIN:VEVENT\r\n")
		require.Contains(t, text, "END:VEVENT\r\n")
		require.Contains(t, text, "STATUS:CONFIRMED\r\n")
	})

	t.Run(`времена в utc basic формате`, func(t *testing.T) {
		require.Contains(t, text, "DTSTART:20260302T110000Z\r\n")
		require.Contains(t, text, "DTEND:20260302T120000Z\r\n")
	})

	t.Run(`uid присутствует в теле`, func(t *testing.T) {
		require.NotEmpty(t, uid)
		require.Contains(t, text, "UID:"+uid+"\r\n")
	})

	t.Run(`участники`, func(t *testing.T) {
		require.Contains(t, text, "ATTENDEE;CN=Иванов Иван:mailto:ivanov@example.com\r\n")
		require.Contains(t, text, "ATTENDEE;CN=Петрова Анна:mailto:recruiter@example.com\r\n")
	})

	t.Run(`уникальный uid на каждое приглашение`, func(t *testing.T) {
		_, uid2 := Generate(req)
		require.NotEqual(t, uid, uid2)
	})

	t.Run(`экранирование спецсимволов`, func(t *testing.T) {
		b, _ := Generate(calendarapimodels.EventRequest{
			Summary: "Встреча; этап 1, финал",
			Start:   start,
			End:     start.Add(time.Hour),
		})
		require.Contains(t, string(b), `SUMMARY:Встреча\; этап 1\, финал`)
	})
}
