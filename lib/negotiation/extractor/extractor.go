package extractor

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"hr-scheduler-backend/db"
	gpthandler "hr-scheduler-backend/lib/gpt"
	spacesettingsstore "hr-scheduler-backend/lib/space/settings/store"
	"hr-scheduler-backend/models"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	gptmodels "hr-scheduler-backend/models/api/gpt"
)

type Provider interface {
	// Extract возвращает nil, если в сообщении нет ни одного сигнала о времени —
	// это явный исход "не поняли", по которому бот просит уточнение
	Extract(ctx context.Context, spaceID, message string) *calendarapimodels.AvailabilityWindow
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

func (i impl) Extract(ctx context.Context, spaceID, message string) *calendarapimodels.AvailabilityWindow {
	logger := log.WithField("space_id", spaceID)
	enabled, err := i.spaceSettingsStore.IsEnabled(spaceID, models.AIExtractSetting)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения настройки разбора через оракула")
	}
	if enabled && gpthandler.Instance != nil {
		extracted, err := gpthandler.Instance.ExtractAvailability(ctx, message)
		if err == nil {
			window, convErr := FromOracle(*extracted)
			if convErr == nil {
				return window
			}
			logger.WithError(convErr).Warn("ответ оракула не прошел валидацию, используем детерминированный разбор")
		} else {
			logger.WithError(err).Warn("оракул недоступен, используем детерминированный разбор")
		}
	}
	return ParseFallback(message, time.Now())
}

// FromOracle валидирует и конвертирует ответ оракула.
func FromOracle(data gptmodels.ExtractedAvailability) (*calendarapimodels.AvailabilityWindow, error) {
	startDate, err := time.Parse("2006-01-02", data.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse("2006-01-02", data.EndDate)
	if err != nil {
		return nil, err
	}
	window := calendarapimodels.AvailabilityWindow{
		StartDate:     startDate,
		EndDate:       endDate,
		PreferredDays: normalizeDays(data.PreferredDays),
	}
	if data.PreferredHours != nil {
		window.PreferredHours = &calendarapimodels.HourRange{
			Start: data.PreferredHours.Start,
			End:   data.PreferredHours.End,
		}
	}
	if err = window.Validate(); err != nil {
		return nil, err
	}
	return &window, nil
}
