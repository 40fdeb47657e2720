package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	calendarapimodels "hr-scheduler-backend/models/api/calendar"
)

// кандидаты пишут и по-русски и по-английски
var weekdayStems = map[string]string{
	"monday":      "monday",
	"tuesday":     "tuesday",
	"wednesday":   "wednesday",
	"thursday":    "thursday",
	"friday":      "friday",
	"saturday":    "saturday",
	"sunday":      "sunday",
	"понедельник": "monday",
	"вторник":     "tuesday",
	"сред":        "wednesday",
	"четверг":     "thursday",
	"пятниц":      "friday",
	"суббот":      "saturday",
	"воскресень":  "sunday",
}

var weekdayOrder = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var (
	datePairRe   = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})(?:[/.\-](\d{2,4}))?\b`)
	clockTimeRe  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	amPmTimeRe   = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	nextWeekList = []string{"next week", "следующей неделе", "следующую неделю"}
	thisWeekList = []string{"this week", "этой неделе", "эту неделю"}
)

// ParseFallback — детерминированный разбор без оракула.
// Возвращает nil, если в сообщении нет ни одного сигнала о времени.
func ParseFallback(message string, now time.Time) *calendarapimodels.AvailabilityWindow {
	text := strings.ToLower(message)

	days := scanWeekdays(text)
	hours := scanHours(text)
	explicitDates := scanDates(text, now)
	isNextWeek := containsAny(text, nextWeekList)
	isThisWeek := containsAny(text, thisWeekList)

	hasSignal := len(days) > 0 || hours != nil || len(explicitDates) > 0 || isNextWeek || isThisWeek
	if !hasSignal {
		return nil
	}

	window := calendarapimodels.AvailabilityWindow{
		PreferredDays:  days,
		PreferredHours: hours,
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case len(explicitDates) >= 2:
		window.StartDate = explicitDates[0]
		window.EndDate = explicitDates[len(explicitDates)-1]
	case isNextWeek:
		// со следующего понедельника по воскресенье
		window.StartDate = nextMonday(today)
		window.EndDate = window.StartDate.AddDate(0, 0, 6)
	case isThisWeek:
		// с сегодняшнего дня по ближайшее воскресенье
		window.StartDate = today
		window.EndDate = comingSunday(today)
	default:
		window.StartDate = today
		window.EndDate = today.AddDate(0, 0, 14)
	}
	if window.EndDate.Before(window.StartDate) {
		window.StartDate, window.EndDate = window.EndDate, window.StartDate
	}
	return &window
}

func scanWeekdays(text string) []string {
	found := map[string]bool{}
	for stem, day := range weekdayStems {
		if strings.Contains(text, stem) {
			found[day] = true
		}
	}
	result := []string{}
	for _, day := range weekdayOrder {
		if found[day] {
			result = append(result, day)
		}
	}
	return result
}

func scanHours(text string) *calendarapimodels.HourRange {
	switch {
	case strings.Contains(text, "morning") || strings.Contains(text, "утр"):
		return &calendarapimodels.HourRange{Start: 9, End: 12}
	case strings.Contains(text, "afternoon") || strings.Contains(text, "днем") || strings.Contains(text, "днём") || strings.Contains(text, "после обеда"):
		return &calendarapimodels.HourRange{Start: 12, End: 18}
	case strings.Contains(text, "evening") || strings.Contains(text, "вечер"):
		return &calendarapimodels.HourRange{Start: 18, End: 21}
	}

	mentioned := []int{}
	for _, match := range clockTimeRe.FindAllStringSubmatch(text, -1) {
		hour, err := strconv.Atoi(match[1])
		if err == nil && hour >= 0 && hour <= 23 {
			mentioned = append(mentioned, hour)
		}
	}
	for _, match := range amPmTimeRe.FindAllStringSubmatch(text, -1) {
		hour, err := strconv.Atoi(match[1])
		if err != nil || hour < 1 || hour > 12 {
			continue
		}
		if match[2] == "pm" && hour != 12 {
			hour += 12
		}
		if match[2] == "am" && hour == 12 {
			hour = 0
		}
		mentioned = append(mentioned, hour)
	}
	if len(mentioned) == 0 {
		return nil
	}
	minHour, maxHour := mentioned[0], mentioned[0]
	for _, hour := range mentioned {
		if hour < minHour {
			minHour = hour
		}
		if hour > maxHour {
			maxHour = hour
		}
	}
	if minHour == maxHour {
		// одно упоминание — берем двухчасовое окно от него
		maxHour = minHour + 2
		if maxHour > 23 {
			maxHour = 23
		}
	}
	if minHour >= maxHour {
		return nil
	}
	return &calendarapimodels.HourRange{Start: minHour, End: maxHour}
}

func scanDates(text string, now time.Time) []time.Time {
	result := []time.Time{}
	for _, match := range datePairRe.FindAllStringSubmatch(text, -1) {
		day, err1 := strconv.Atoi(match[1])
		month, err2 := strconv.Atoi(match[2])
		if err1 != nil || err2 != nil || day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		year := now.Year()
		if match[3] != "" {
			parsed, err := strconv.Atoi(match[3])
			if err != nil {
				continue
			}
			if parsed < 100 {
				parsed += 2000
			}
			year = parsed
		}
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		// дата без года в прошлом — речь про следующий год
		if match[3] == "" && date.Before(now.AddDate(0, 0, -1)) {
			date = date.AddDate(1, 0, 0)
		}
		result = append(result, date)
	}
	return result
}

func containsAny(text string, list []string) bool {
	for _, phrase := range list {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func nextMonday(today time.Time) time.Time {
	daysAhead := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return today.AddDate(0, 0, daysAhead)
}

func comingSunday(today time.Time) time.Time {
	daysAhead := (int(time.Sunday) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, daysAhead)
}

func normalizeDays(days []string) []string {
	result := make([]string, 0, len(days))
	for _, day := range days {
		result = append(result, strings.ToLower(strings.TrimSpace(day)))
	}
	return result
}
