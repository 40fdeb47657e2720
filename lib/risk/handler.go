package risk

import (
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
	"hr-scheduler-backend/db"
	applicantstore "hr-scheduler-backend/lib/applicant/store"
	interviewstore "hr-scheduler-backend/lib/interview/store"
	negotiationstore "hr-scheduler-backend/lib/negotiation/store"
	"hr-scheduler-backend/models"
	riskapimodels "hr-scheduler-backend/models/api/risk"
	dbmodels "hr-scheduler-backend/models/db"
)

// веса факторов риска неявки кандидата
const (
	weightResponseTime          = 0.30
	weightNegotiationComplexity = 0.25
	weightProfileCompleteness   = 0.20
	weightHistoricalPattern     = 0.25
)

type Provider interface {
	// AnalyzeRisk оценивает вероятность неявки кандидата на интервью, 0.0-1.0
	AnalyzeRisk(spaceID, interviewID string) (*riskapimodels.RiskReport, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		interviewStore:   interviewstore.NewInstance(db.DB),
		applicantStore:   applicantstore.NewInstance(db.DB),
		negotiationStore: negotiationstore.NewInstance(db.DB),
	}
}

type impl struct {
	interviewStore   interviewstore.Provider
	applicantStore   applicantstore.Provider
	negotiationStore negotiationstore.Provider
}

func (i impl) AnalyzeRisk(spaceID, interviewID string) (*riskapimodels.RiskReport, error) {
	interview, err := i.interviewStore.GetByID(interviewID)
	if err != nil {
		return nil, err
	}
	if interview == nil || interview.SpaceID != spaceID {
		return nil, errors.New("интервью не найдено")
	}
	applicant := interview.Applicant
	if applicant == nil {
		applicant, err = i.applicantStore.GetByID(spaceID, interview.ApplicantID)
		if err != nil {
			return nil, err
		}
		if applicant == nil {
			return nil, errors.New("кандидат не найден")
		}
	}

	responseRisk := responseTimeRisk(interview)
	negotiationRisk, rounds := i.negotiationRisk(interviewID)
	profileRisk := profileCompletenessRisk(*applicant)
	historicalRisk, err := i.historicalRisk(applicant.ID, interviewID)
	if err != nil {
		return nil, err
	}

	totalRisk := responseRisk*weightResponseTime +
		negotiationRisk*weightNegotiationComplexity +
		profileRisk*weightProfileCompleteness +
		historicalRisk*weightHistoricalPattern

	return &riskapimodels.RiskReport{
		NoShowRisk: round2(totalRisk),
		RiskLevel:  CategorizeRisk(totalRisk),
		Factors: riskapimodels.RiskFactors{
			ResponseTimeHours:     responseTimeHours(interview),
			NegotiationRounds:     rounds,
			ProfileCompleteness:   round2(1 - profileRisk),
			HistoricalReliability: round2(1 - historicalRisk),
		},
	}, nil
}

// риск по скорости ответа на приглашение: чем дольше тянет кандидат, тем выше
func responseTimeRisk(interview *dbmodels.Interview) float64 {
	if interview.Status == models.InterviewStatusInvitationSent {
		// еще не ответил
		return 0.5
	}
	if interview.CreatedAt.IsZero() || interview.UpdatedAt.IsZero() {
		// нет отметок времени — средний риск
		return 0.5
	}
	hours := responseTimeHours(interview)
	switch {
	case hours < 6:
		return 0.1
	case hours < 24:
		return 0.3
	case hours < 48:
		return 0.7
	default:
		return 0.9
	}
}

func responseTimeHours(interview *dbmodels.Interview) float64 {
	if interview.Status == models.InterviewStatusInvitationSent {
		return 0
	}
	if interview.CreatedAt.IsZero() || interview.UpdatedAt.IsZero() {
		return 0
	}
	return interview.UpdatedAt.Sub(interview.CreatedAt).Hours()
}

// риск по сложности согласования: чем больше раундов, тем выше
func (i impl) negotiationRisk(interviewID string) (riskScore float64, rounds int) {
	session, err := i.negotiationStore.GetLastByInterview(interviewID)
	if err != nil || session == nil {
		// согласование не потребовалось
		return 0.1, 0
	}
	switch session.Round {
	case 1:
		return 0.2, 1
	case 2:
		return 0.5, 2
	default:
		return 0.8, session.Round
	}
}

// риск по заполненности профиля: контакты и содержательные поля заявки
func profileCompletenessRisk(applicant dbmodels.Applicant) float64 {
	filled := 0
	total := 6
	if applicant.GetFIO() != "" {
		filled++
	}
	if applicant.Email != "" {
		filled++
	}
	if applicant.Phone != "" {
		filled++
	}
	// содержательным считаем поле длиннее 10 символов, длина в рунах
	if utf8.RuneCountInString(applicant.CoverLetter) > 10 {
		filled++
	}
	if utf8.RuneCountInString(applicant.Address) > 10 {
		filled++
	}
	if utf8.RuneCountInString(applicant.ResumeUrl) > 10 {
		filled++
	}
	return 1 - float64(filled)/float64(total)
}

// риск по прошлым интервью кандидата: доля неявок и доля завершенных
func (i impl) historicalRisk(applicantID, excludeInterviewID string) (float64, error) {
	past, err := i.interviewStore.ListPastByApplicant(applicantID, excludeInterviewID)
	if err != nil {
		return 0, err
	}
	if len(past) == 0 {
		// истории нет — средний риск
		return 0.5, nil
	}
	total := float64(len(past))
	noShows := 0
	completed := 0
	for _, rec := range past {
		switch rec.Status {
		case models.InterviewStatusNoShow:
			noShows++
		case models.InterviewStatusCompleted:
			completed++
		}
	}
	riskScore := float64(noShows)/total + (1-float64(completed)/total)*0.5
	return math.Min(riskScore, 1.0), nil
}

func CategorizeRisk(riskScore float64) models.RiskLevel {
	switch {
	case riskScore < 0.3:
		return models.RiskLevelLow
	case riskScore < 0.7:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelHigh
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
