package negotiationapimodels

import (
	"time"

	"hr-scheduler-backend/models"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	dbmodels "hr-scheduler-backend/models/db"
)

type NewMessageRequest struct {
	InterviewID string `json:"interview_id"`
	Message     string `json:"message"`
}

func (r NewMessageRequest) Validate() error {
	if r.InterviewID == "" {
		return errNoInterviewID
	}
	if r.Message == "" {
		return errNoMessage
	}
	return nil
}

type ProcessResult struct {
	ResponseType models.ResponseType       `json:"response_type"`
	Message      string                    `json:"message"`
	Slots        []calendarapimodels.Slot  `json:"slots,omitempty"`
	Session      SessionView               `json:"session"`
}

type SessionView struct {
	ID          string                   `json:"id"`
	InterviewID string                   `json:"interview_id"`
	Round       int                      `json:"round"`
	State       models.NegotiationState  `json:"state"`
	History     []ChatEntryView          `json:"history"`
	Suggested   []calendarapimodels.Slot `json:"suggested_slots,omitempty"`
}

type ChatEntryView struct {
	Role      models.ChatRole `json:"role"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
}

func SessionConvert(rec dbmodels.NegotiationSession) SessionView {
	result := SessionView{
		ID:          rec.ID,
		InterviewID: rec.InterviewID,
		Round:       rec.Round,
		State:       rec.State,
		History:     make([]ChatEntryView, 0, len(rec.History)),
	}
	for _, entry := range rec.History {
		result.History = append(result.History, ChatEntryView{
			Role:      entry.Role,
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
		})
	}
	for _, slot := range rec.SuggestedSlots {
		result.Suggested = append(result.Suggested, calendarapimodels.Slot{Start: slot.Start, End: slot.End})
	}
	return result
}

// данные для генерации ответа кандидату
type ComposeContext struct {
	ResponseType  models.ResponseType
	CandidateName string
	VacancyName   string
	Slots         []calendarapimodels.Slot
	Round         int
	MaxRounds     int
}
