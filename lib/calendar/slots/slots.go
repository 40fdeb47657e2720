package slots

import (
	"strings"
	"time"

	calendarapimodels "hr-scheduler-backend/models/api/calendar"
)

// Generate строит сетку слотов рекрутера: будние дни в [startDate, endDate),
// блоки подряд с hourFrom, последний блок заканчивается не позже hourTo.
// Функция детерминирована, слоты возвращаются в хронологическом порядке.
func Generate(startDate, endDate time.Time, durationMin, hourFrom, hourTo int) []calendarapimodels.Slot {
	result := []calendarapimodels.Slot{}
	if durationMin <= 0 {
		return result
	}
	duration := time.Duration(durationMin) * time.Minute
	day := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	for ; day.Before(endDate); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), hourFrom, 0, 0, 0, day.Location())
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), hourTo, 0, 0, 0, day.Location())
		for slotStart := dayStart; !slotStart.Add(duration).After(dayEnd); slotStart = slotStart.Add(duration) {
			result = append(result, calendarapimodels.Slot{
				Start: slotStart,
				End:   slotStart.Add(duration),
			})
		}
	}
	return result
}

// Match фильтрует слоты по окну доступности кандидата, сохраняя исходный порядок.
// День конца окна входит в окно целиком, независимо от времени в EndDate.
func Match(candidateSlots []calendarapimodels.Slot, window calendarapimodels.AvailabilityWindow) []calendarapimodels.Slot {
	result := []calendarapimodels.Slot{}
	days := map[string]bool{}
	for _, day := range window.PreferredDays {
		days[strings.ToLower(day)] = true
	}
	windowEnd := time.Date(window.EndDate.Year(), window.EndDate.Month(), window.EndDate.Day(),
		0, 0, 0, 0, window.EndDate.Location()).AddDate(0, 0, 1)
	for _, slot := range candidateSlots {
		if slot.Start.Before(window.StartDate) || !slot.Start.Before(windowEnd) {
			continue
		}
		if len(days) > 0 && !days[strings.ToLower(slot.Start.Weekday().String())] {
			continue
		}
		if window.PreferredHours != nil {
			hour := slot.Start.Hour()
			if hour < window.PreferredHours.Start || hour >= window.PreferredHours.End {
				continue
			}
		}
		result = append(result, slot)
	}
	return result
}

func Overlap(a calendarapimodels.Slot, b calendarapimodels.BusyInterval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}
