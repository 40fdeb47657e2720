package calendarapimodels

import (
	"time"

	"github.com/pkg/errors"
)

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// окно доступности, извлеченное из свободного текста кандидата
type AvailabilityWindow struct {
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	PreferredHours *HourRange `json:"preferred_hours,omitempty"`
	PreferredDays  []string   `json:"preferred_days,omitempty"`
}

var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func IsWeekdayName(name string) bool {
	return weekdayNames[name]
}

func (w AvailabilityWindow) Validate() error {
	if w.StartDate.IsZero() || w.EndDate.IsZero() {
		return errors.New("не заданы даты окна доступности")
	}
	if w.EndDate.Before(w.StartDate) {
		return errors.New("дата окончания окна доступности раньше даты начала")
	}
	if w.PreferredHours != nil {
		h := w.PreferredHours
		if h.Start < 0 || h.Start > 23 || h.End < 0 || h.End > 23 || h.Start >= h.End {
			return errors.New("некорректный диапазон часов")
		}
	}
	for _, day := range w.PreferredDays {
		if !IsWeekdayName(day) {
			return errors.Wrapf(errors.New("неизвестный день недели"), "%v", day)
		}
	}
	return nil
}

type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type RequestToken struct {
	ClientID     string
	ClientSecret string
	Code         string
	RedirectUri  string
}

type RefreshTokenRequest struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

type ResponseToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type FreeBusyRequest struct {
	TimeMin time.Time `json:"time_min"`
	TimeMax time.Time `json:"time_max"`
}

type FreeBusyResponse struct {
	Busy []BusyInterval `json:"busy"`
}

type EventAttendee struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type EventRequest struct {
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Attendees   []EventAttendee `json:"attendees,omitempty"`
}

type EventResponse struct {
	ID string `json:"id"`
}
