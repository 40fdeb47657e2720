package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-scheduler-backend/models"
	dbmodels "hr-scheduler-backend/models/db"
)

const (
	testSpaceID     = "space-1"
	testInterviewID = "interview-1"
	testApplicantID = "applicant-1"
)

type fakeInterviewStore struct {
	rec  *dbmodels.Interview
	past []dbmodels.Interview
}

func (f *fakeInterviewStore) Create(rec dbmodels.Interview) (string, error)        { return rec.ID, nil }
func (f *fakeInterviewStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeInterviewStore) GetByID(id string) (*dbmodels.Interview, error) {
	if f.rec != nil && f.rec.ID == id {
		return f.rec, nil
	}
	return nil, nil
}
func (f *fakeInterviewStore) ListPastByApplicant(applicantID, excludeID string) ([]dbmodels.Interview, error) {
	return f.past, nil
}
func (f *fakeInterviewStore) ListUpcoming(limit int) ([]dbmodels.Interview, error) { return nil, nil }

type fakeApplicantStore struct{}

func (f *fakeApplicantStore) Create(rec dbmodels.Applicant) (string, error) { return rec.ID, nil }
func (f *fakeApplicantStore) GetByID(spaceID, id string) (*dbmodels.Applicant, error) {
	return nil, nil
}

type fakeNegotiationStore struct {
	session *dbmodels.NegotiationSession
}

func (f *fakeNegotiationStore) Create(rec dbmodels.NegotiationSession) (string, error) {
	return rec.ID, nil
}
func (f *fakeNegotiationStore) Save(rec *dbmodels.NegotiationSession) error { return nil }
func (f *fakeNegotiationStore) GetByID(id string) (*dbmodels.NegotiationSession, error) {
	return f.session, nil
}
func (f *fakeNegotiationStore) GetLastByInterview(interviewID string) (*dbmodels.NegotiationSession, error) {
	return f.session, nil
}
func (f *fakeNegotiationStore) ListEscalated(spaceID string) ([]dbmodels.NegotiationSession, error) {
	return nil, nil
}

func fullApplicant() *dbmodels.Applicant {
	rec := dbmodels.Applicant{
		FirstName:   "Иван",
		LastName:    "Иванов",
		Email:       "ivanov@example.com",
		Phone:       "+79990001122",
		Address:     "Москва, ул. Ленина, д. 1",
		CoverLetter: "Очень хочу работать в вашей компании",
		ResumeUrl:   "https://example.com/resume.pdf",
	}
	rec.ID = testApplicantID
	rec.SpaceID = testSpaceID
	return &rec
}

func testInterview(status models.InterviewStatus, responseAfter time.Duration, applicant *dbmodels.Applicant) *dbmodels.Interview {
	created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	rec := dbmodels.Interview{
		ApplicantID: testApplicantID,
		Applicant:   applicant,
		Status:      status,
	}
	rec.ID = testInterviewID
	rec.SpaceID = testSpaceID
	rec.CreatedAt = created
	rec.UpdatedAt = created.Add(responseAfter)
	return &rec
}

func newAnalyzer(interview *dbmodels.Interview, past []dbmodels.Interview, session *dbmodels.NegotiationSession) impl {
	return impl{
		interviewStore:   &fakeInterviewStore{rec: interview, past: past},
		applicantStore:   &fakeApplicantStore{},
		negotiationStore: &fakeNegotiationStore{session: session},
	}
}

func TestAnalyzeRisk(t *testing.T) {
	t.Run(`взвешенная оценка по всем факторам`, func(t *testing.T) {
		// ответ за 3 часа (0.1), 2 раунда согласования (0.5),
		// полный профиль (0.0), в истории 1 завершенное и 1 неявка (0.75)
		session := &dbmodels.NegotiationSession{Round: 2}
		past := []dbmodels.Interview{
			{Status: models.InterviewStatusCompleted},
			{Status: models.InterviewStatusNoShow},
		}
		analyzer := newAnalyzer(testInterview(models.InterviewStatusScheduled, 3*time.Hour, fullApplicant()), past, session)

		report, err := analyzer.AnalyzeRisk(testSpaceID, testInterviewID)
		require.NoError(t, err)
		require.InDelta(t, 0.34, report.NoShowRisk, 0.001)
		require.Equal(t, models.RiskLevelMedium, report.RiskLevel)
		require.InDelta(t, 3.0, report.Factors.ResponseTimeHours, 0.001)
		require.Equal(t, 2, report.Factors.NegotiationRounds)
		require.InDelta(t, 1.0, report.Factors.ProfileCompleteness, 0.001)
		require.InDelta(t, 0.25, report.Factors.HistoricalReliability, 0.001)
	})

	t.Run(`интервью не найдено`, func(t *testing.T) {
		analyzer := newAnalyzer(nil, nil, nil)
		_, err := analyzer.AnalyzeRisk(testSpaceID, testInterviewID)
		require.Error(t, err)
	})
}

func TestResponseTimeRisk(t *testing.T) {
	cases := []struct {
		name     string
		status   models.InterviewStatus
		elapsed  time.Duration
		expected float64
	}{
		{`еще не ответил`, models.InterviewStatusInvitationSent, 0, 0.5},
		{`до 6 часов`, models.InterviewStatusScheduled, 3 * time.Hour, 0.1},
		{`до 24 часов`, models.InterviewStatusScheduled, 10 * time.Hour, 0.3},
		{`до 48 часов`, models.InterviewStatusScheduled, 30 * time.Hour, 0.7},
		{`дольше 48 часов`, models.InterviewStatusScheduled, 72 * time.Hour, 0.9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := testInterview(c.status, c.elapsed, nil)
			require.InDelta(t, c.expected, responseTimeRisk(rec), 0.001)
		})
	}

	t.Run(`нет отметок времени — средний риск`, func(t *testing.T) {
		rec := &dbmodels.Interview{Status: models.InterviewStatusScheduled}
		require.InDelta(t, 0.5, responseTimeRisk(rec), 0.001)
	})
}

func TestNegotiationRisk(t *testing.T) {
	t.Run(`согласование не потребовалось`, func(t *testing.T) {
		analyzer := newAnalyzer(nil, nil, nil)
		riskScore, rounds := analyzer.negotiationRisk(testInterviewID)
		require.InDelta(t, 0.1, riskScore, 0.001)
		require.Equal(t, 0, rounds)
	})
	cases := []struct {
		round    int
		expected float64
	}{
		{1, 0.2},
		{2, 0.5},
		{3, 0.8},
		{4, 0.8},
	}
	for _, c := range cases {
		analyzer := newAnalyzer(nil, nil, &dbmodels.NegotiationSession{Round: c.round})
		riskScore, rounds := analyzer.negotiationRisk(testInterviewID)
		require.InDelta(t, c.expected, riskScore, 0.001)
		require.Equal(t, c.round, rounds)
	}
}

func TestProfileCompletenessRisk(t *testing.T) {
	t.Run(`полный профиль — нулевой риск`, func(t *testing.T) {
		require.InDelta(t, 0.0, profileCompletenessRisk(*fullApplicant()), 0.001)
	})
	t.Run(`пустой профиль — максимальный риск`, func(t *testing.T) {
		require.InDelta(t, 1.0, profileCompletenessRisk(dbmodels.Applicant{}), 0.001)
	})
	t.Run(`короткие поля заявки не считаются заполненными`, func(t *testing.T) {
		rec := dbmodels.Applicant{
			FirstName:   "Иван",
			Email:       "a@b.ru",
			Phone:       "+7999",
			CoverLetter: "коротко",
			Address:     "Москва",
			ResumeUrl:   "url",
		}
		// заполнены только ФИО, почта и телефон
		require.InDelta(t, 0.5, profileCompletenessRisk(rec), 0.001)
	})
	t.Run(`длина полей заявки считается в рунах, не в байтах`, func(t *testing.T) {
		rec := dbmodels.Applicant{
			CoverLetter: "десять букв",            // 11 рун — заполнено
			Address:     "Москва",                 // 6 рун, 12 байт — не заполнено
			ResumeUrl:   "резюме врача прилагаю к заявке",
		}
		// заполнены сопроводительное письмо и резюме
		require.InDelta(t, 1-2.0/6.0, profileCompletenessRisk(rec), 0.001)
	})
}

func TestHistoricalRisk(t *testing.T) {
	t.Run(`нет истории — средний риск`, func(t *testing.T) {
		analyzer := newAnalyzer(nil, nil, nil)
		riskScore, err := analyzer.historicalRisk(testApplicantID, testInterviewID)
		require.NoError(t, err)
		require.InDelta(t, 0.5, riskScore, 0.001)
	})
	t.Run(`все завершены — минимальный риск`, func(t *testing.T) {
		past := []dbmodels.Interview{
			{Status: models.InterviewStatusCompleted},
			{Status: models.InterviewStatusCompleted},
		}
		analyzer := newAnalyzer(nil, past, nil)
		riskScore, err := analyzer.historicalRisk(testApplicantID, testInterviewID)
		require.NoError(t, err)
		require.InDelta(t, 0.0, riskScore, 0.001)
	})
	t.Run(`все неявки — риск ограничен единицей`, func(t *testing.T) {
		past := []dbmodels.Interview{
			{Status: models.InterviewStatusNoShow},
			{Status: models.InterviewStatusNoShow},
		}
		analyzer := newAnalyzer(nil, past, nil)
		riskScore, err := analyzer.historicalRisk(testApplicantID, testInterviewID)
		require.NoError(t, err)
		require.InDelta(t, 1.0, riskScore, 0.001)
	})
}

func TestCategorizeRisk(t *testing.T) {
	require.Equal(t, models.RiskLevelLow, CategorizeRisk(0.0))
	require.Equal(t, models.RiskLevelLow, CategorizeRisk(0.29))
	require.Equal(t, models.RiskLevelMedium, CategorizeRisk(0.3))
	require.Equal(t, models.RiskLevelMedium, CategorizeRisk(0.69))
	require.Equal(t, models.RiskLevelHigh, CategorizeRisk(0.7))
	require.Equal(t, models.RiskLevelHigh, CategorizeRisk(1.0))
}
