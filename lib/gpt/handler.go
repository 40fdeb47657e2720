package gpthandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-scheduler-backend/config"
	yagptclient "hr-scheduler-backend/lib/gpt/yagpt-client"
	"hr-scheduler-backend/models"
	gptmodels "hr-scheduler-backend/models/api/gpt"
	negotiationapimodels "hr-scheduler-backend/models/api/negotiation"
)

type Provider interface {
	// разбор свободного текста кандидата в структурированное окно доступности
	ExtractAvailability(ctx context.Context, message string) (*gptmodels.ExtractedAvailability, error)
	// генерация ответа кандидату по контексту диалога
	GenerateResponse(ctx context.Context, composeCtx negotiationapimodels.ComposeContext) (string, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		client: yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID),
	}
}

type impl struct {
	client yagptclient.Provider
}

const extractPromt = `Ты помощник рекрутера. Из сообщения кандидата выдели, когда ему удобно пройти интервью.
Ответь строго одним JSON объектом без пояснений, в формате:
{"start_date":"YYYY-MM-DD","end_date":"YYYY-MM-DD","preferred_hours":{"start":0,"end":23},"preferred_days":["monday"]}
Поля preferred_hours и preferred_days не указывай, если кандидат их не упоминал.
Названия дней недели только английские в нижнем регистре. Сегодня %s.`

func (i impl) ExtractAvailability(ctx context.Context, message string) (*gptmodels.ExtractedAvailability, error) {
	timeout := time.Duration(config.Conf.YandexGPT.ExtractTimeoutSec) * time.Second
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	promt := fmt.Sprintf(extractPromt, time.Now().Format("2006-01-02"))
	answer, err := i.client.GenerateByPromtAndText(reqCtx, promt, message)
	if err != nil {
		return nil, err
	}
	payload := stripCodeFence(answer)
	result := gptmodels.ExtractedAvailability{}
	if err = json.Unmarshal([]byte(payload), &result); err != nil {
		log.WithError(err).
			WithField("oracle_answer", answer).
			Warn("оракул вернул не JSON при разборе доступности")
		return nil, errors.Wrap(err, "некорректный ответ оракула")
	}
	return &result, nil
}

const generatePromt = `Ты вежливый ассистент рекрутера, который согласует время интервью с кандидатом.
Пиши по-русски, кратко и дружелюбно, без markdown разметки. Не выдумывай слоты, используй только переданные.`

func (i impl) GenerateResponse(ctx context.Context, composeCtx negotiationapimodels.ComposeContext) (string, error) {
	timeout := time.Duration(config.Conf.YandexGPT.GenerateTimeoutSec) * time.Second
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return i.client.GenerateByPromtAndText(reqCtx, generatePromt, buildGenerateText(composeCtx))
}

func buildGenerateText(composeCtx negotiationapimodels.ComposeContext) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Кандидат: %s. Вакансия: %s.\n", composeCtx.CandidateName, composeCtx.VacancyName))
	switch composeCtx.ResponseType {
	case models.ResponseTypeClarification:
		sb.WriteString("Из сообщения кандидата не удалось понять, когда ему удобно. Попроси уточнить даты и время.")
	case models.ResponseTypeSlotSuggestions:
		sb.WriteString("Предложи кандидату выбрать один из слотов:\n")
		for _, slot := range composeCtx.Slots {
			sb.WriteString(fmt.Sprintf("- %s — %s\n", slot.Start.Format("02.01.2006 15:04"), slot.End.Format("15:04")))
		}
	case models.ResponseTypeRequestAlternatives:
		sb.WriteString(fmt.Sprintf("На предложенное кандидатом время нет свободных слотов (раунд %d из %d). Попроси другие варианты.",
			composeCtx.Round, composeCtx.MaxRounds))
	case models.ResponseTypeEscalation:
		sb.WriteString("Согласовать время автоматически не удалось. Сообщи, что с кандидатом свяжется рекрутер.")
	}
	return sb.String()
}

// модель периодически заворачивает JSON в markdown блок
func stripCodeFence(answer string) string {
	result := strings.TrimSpace(answer)
	result = strings.TrimPrefix(result, "```json")
	result = strings.TrimPrefix(result, "```")
	result = strings.TrimSuffix(result, "```")
	return strings.TrimSpace(result)
}
