package pdfexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-scheduler-backend/models"
	dbmodels "hr-scheduler-backend/models/db"
)

func TestEscalationHTML(t *testing.T) {
	t.Run(`блок содержит кандидата, вакансию, раунд и переписку`, func(t *testing.T) {
		session := dbmodels.NegotiationSession{
			Round: 4,
			Interview: &dbmodels.Interview{
				Applicant: &dbmodels.Applicant{
					FirstName: "Иван",
					LastName:  "Иванов",
					Phone:     "+79990001122",
					Email:     "ivanov@example.com",
				},
				Vacancy: &dbmodels.Vacancy{VacancyName: "Go разработчик"},
			},
			History: dbmodels.NegotiationHistory{
				{Role: models.ChatRoleCandidate, Message: "могу в понедельник"},
				{Role: models.ChatRoleBot, Message: "свободных слотов нет"},
			},
		}
		session.UpdatedAt = time.Date(2026, 3, 5, 12, 30, 0, 0, time.UTC)

		block := escalationHTML(session)
		require.Contains(t, block, "<b>Иванов Иван</b>")
		require.Contains(t, block, "+79990001122, ivanov@example.com")
		require.Contains(t, block, "Вакансия: Go разработчик")
		require.Contains(t, block, "Раунд: 4, эскалация: 05.03.2026 12:30")
		require.Contains(t, block, "Кандидат: могу в понедельник")
		require.Contains(t, block, "Бот: свободных слотов нет")
	})

	t.Run(`текст переписки экранируется`, func(t *testing.T) {
		session := dbmodels.NegotiationSession{
			History: dbmodels.NegotiationHistory{
				{Role: models.ChatRoleCandidate, Message: "подходит <b>любое</b> время"},
			},
		}
		block := escalationHTML(session)
		require.NotContains(t, block, "<b>любое</b>")
		require.Contains(t, block, "&lt;b&gt;любое&lt;/b&gt;")
	})

	t.Run(`сессия без связанных записей не падает`, func(t *testing.T) {
		block := escalationHTML(dbmodels.NegotiationSession{Round: 2})
		require.Contains(t, block, "Раунд: 2")
	})
}
