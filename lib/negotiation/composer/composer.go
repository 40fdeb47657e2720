package composer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"hr-scheduler-backend/db"
	gpthandler "hr-scheduler-backend/lib/gpt"
	spacesettingsstore "hr-scheduler-backend/lib/space/settings/store"
	"hr-scheduler-backend/lib/utils/helpers"
	"hr-scheduler-backend/models"
	negotiationapimodels "hr-scheduler-backend/models/api/negotiation"
)

type Provider interface {
	// Compose всегда возвращает текст ответа: при сбое оракула берется шаблон
	Compose(ctx context.Context, spaceID string, composeCtx negotiationapimodels.ComposeContext) string
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		spaceSettingsStore: spacesettingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	spaceSettingsStore spacesettingsstore.Provider
}

func (i impl) Compose(ctx context.Context, spaceID string, composeCtx negotiationapimodels.ComposeContext) string {
	logger := log.
		WithField("space_id", spaceID).
		WithField("response_type", composeCtx.ResponseType)
	enabled, err := i.spaceSettingsStore.IsEnabled(spaceID, models.AIReplySetting)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения настройки генерации ответов")
	}
	if enabled && gpthandler.Instance != nil {
		generated, err := gpthandler.Instance.GenerateResponse(ctx, composeCtx)
		if err == nil && ValidateGenerated(generated) {
			return strings.TrimSpace(generated)
		}
		if err != nil {
			logger.WithError(err).Warn("оракул недоступен, используем шаблон ответа")
		} else {
			logger.Warn("сгенерированный ответ не прошел валидацию, используем шаблон")
		}
	}
	return Template(composeCtx)
}

const maxGeneratedLen = 1000

// ValidateGenerated отсекает пустые, слишком длинные и "структурные" ответы модели.
func ValidateGenerated(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if utf8.RuneCountInString(trimmed) > maxGeneratedLen {
		return false
	}
	if strings.Contains(trimmed, "```") || strings.Contains(trimmed, "{") || strings.Contains(trimmed, "}") {
		return false
	}
	return true
}

// Template — фиксированные ответы на случай отключенного или недоступного оракула.
func Template(composeCtx negotiationapimodels.ComposeContext) string {
	switch composeCtx.ResponseType {
	case models.ResponseTypeClarification:
		return "К сожалению, не удалось понять, когда вам удобно пройти интервью. " +
			"Напишите, пожалуйста, подходящие даты и время, например: «в следующий вторник после 14:00»."
	case models.ResponseTypeSlotSuggestions:
		sb := strings.Builder{}
		sb.WriteString("Подобрали для вас свободное время. Какой вариант подходит?\n")
		for idx, slot := range composeCtx.Slots {
			sb.WriteString(fmt.Sprintf("%d) %s\n", idx+1, helpers.FormatSlot(slot.Start, slot.End)))
		}
		sb.WriteString("Ответьте номером варианта.")
		return sb.String()
	case models.ResponseTypeRequestAlternatives:
		return "К сожалению, на предложенное вами время свободных слотов нет. " +
			"Подскажите, пожалуйста, другие удобные даты или время."
	case models.ResponseTypeEscalation:
		return "Спасибо за ответы! Передали ваш диалог рекрутеру — он свяжется с вами, " +
			"чтобы подобрать время вручную."
	}
	return "Спасибо за сообщение! Рекрутер свяжется с вами в ближайшее время."
}
