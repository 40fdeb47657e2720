package calendarhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-scheduler-backend/config"
	"hr-scheduler-backend/db"
	calendarclient "hr-scheduler-backend/lib/calendar/client"
	"hr-scheduler-backend/lib/calendar/ics"
	"hr-scheduler-backend/lib/calendar/slots"
	"hr-scheduler-backend/lib/calendar/vault"
	filestorage "hr-scheduler-backend/lib/file-storage"
	interviewstore "hr-scheduler-backend/lib/interview/store"
	spaceusersstore "hr-scheduler-backend/lib/space/users/store"
	"hr-scheduler-backend/lib/utils/circuitbreaker"
	"hr-scheduler-backend/lib/utils/retry"
	"hr-scheduler-backend/models"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	dbmodels "hr-scheduler-backend/models/db"
)

type Provider interface {
	// GetAvailableSlots возвращает свободные слоты рекрутера за период,
	// сетка рабочих часов минус занятые интервалы календаря
	GetAvailableSlots(ctx context.Context, spaceID, recruiterID string, startDate, endDate time.Time) ([]calendarapimodels.Slot, error)

	// CreateInterviewEvent создает событие у провайдера,
	// при недоступности провайдера откатывается на ics файл в s3
	CreateInterviewEvent(ctx context.Context, interviewID string) error
	UpdateInterviewEvent(ctx context.Context, interviewID string) error
	DeleteInterviewEvent(ctx context.Context, interviewID string)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		vault:           vault.Instance,
		client:          calendarclient.Instance,
		fileStorage:     filestorage.Instance,
		interviewStore:  interviewstore.NewInstance(db.DB),
		spaceUsersStore: spaceusersstore.NewInstance(db.DB),
		breaker: circuitbreaker.NewInstance(
			config.Conf.Negotiation.BreakerThreshold,
			time.Duration(config.Conf.Negotiation.BreakerTimeoutSec)*time.Second,
		),
		retry: retry.NewInstance(
			config.Conf.Negotiation.RetryAttempts,
			time.Duration(config.Conf.Negotiation.RetryBaseDelaySec)*time.Second,
		),
	}
}

type impl struct {
	vault           vault.Provider
	client          calendarclient.Provider
	fileStorage     filestorage.Provider
	interviewStore  interviewstore.Provider
	spaceUsersStore spaceusersstore.Provider
	// один breaker на процесс, сбои провайдера общие для всех спейсов
	breaker *circuitbreaker.CircuitBreaker
	retry   *retry.Executor
}

func (i impl) GetAvailableSlots(ctx context.Context, spaceID, recruiterID string, startDate, endDate time.Time) ([]calendarapimodels.Slot, error) {
	grid := slots.Generate(startDate, endDate,
		config.Conf.Negotiation.SlotDurationMin,
		config.Conf.Negotiation.BusinessHourFrom,
		config.Conf.Negotiation.BusinessHourTo)

	accessToken, err := i.vault.GetAccessToken(ctx, spaceID, recruiterID)
	if err != nil {
		if errors.Is(err, vault.ErrNoCredential) {
			// календарь не подключен — отдаем полную сетку рабочих часов
			return grid, nil
		}
		return nil, err
	}

	var busy calendarapimodels.FreeBusyResponse
	err = i.breaker.Do(func() error {
		var reqErr error
		busy, reqErr = i.client.FreeBusy(ctx, accessToken, calendarapimodels.FreeBusyRequest{
			TimeMin: startDate,
			TimeMax: endDate,
		})
		return reqErr
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrUnavailable) {
			return nil, err
		}
		return nil, errors.Wrap(err, "ошибка получения занятости календаря")
	}

	result := []calendarapimodels.Slot{}
	for _, slot := range grid {
		free := true
		for _, interval := range busy.Busy {
			if slots.Overlap(slot, interval) {
				free = false
				break
			}
		}
		if free {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (i impl) CreateInterviewEvent(ctx context.Context, interviewID string) error {
	interview, req, err := i.buildEventRequest(interviewID)
	if err != nil {
		return err
	}
	accessToken, err := i.vault.GetAccessToken(ctx, interview.SpaceID, interview.RecruiterID)
	if err != nil && !errors.Is(err, vault.ErrNoCredential) {
		return err
	}
	if err == nil {
		var eventID string
		err = i.retry.Run(ctx, "calendar.create_event", func() error {
			var reqErr error
			eventID, reqErr = i.client.CreateEvent(ctx, accessToken, *req)
			return reqErr
		})
		if err == nil {
			return i.interviewStore.Update(interviewID, map[string]interface{}{
				"calendar_event_id": eventID,
				"sync_method":       models.SyncMethodProvider,
			})
		}
		log.WithError(err).
			WithField("interview_id", interviewID).
			Warn("провайдер календаря недоступен, переходим на ics файл")
	}
	// офлайн резерв: ics приглашение в s3
	body, uid := ics.Generate(*req)
	objectName := fmt.Sprintf("invites/%v.ics", uid)
	if err = i.fileStorage.UploadInvite(ctx, interview.SpaceID, objectName, body); err != nil {
		return errors.Wrap(err, "ошибка сохранения ics приглашения")
	}
	return i.interviewStore.Update(interviewID, map[string]interface{}{
		"calendar_event_id": objectName,
		"sync_method":       models.SyncMethodIcsFile,
	})
}

func (i impl) UpdateInterviewEvent(ctx context.Context, interviewID string) error {
	interview, req, err := i.buildEventRequest(interviewID)
	if err != nil {
		return err
	}
	if interview.CalendarEventID == "" {
		return i.CreateInterviewEvent(ctx, interviewID)
	}
	if interview.SyncMethod == models.SyncMethodIcsFile {
		// ics нельзя обновить на стороне получателя, генерируем новое приглашение
		body, uid := ics.Generate(*req)
		objectName := fmt.Sprintf("invites/%v.ics", uid)
		if err = i.fileStorage.UploadInvite(ctx, interview.SpaceID, objectName, body); err != nil {
			return errors.Wrap(err, "ошибка сохранения ics приглашения")
		}
		return i.interviewStore.Update(interviewID, map[string]interface{}{
			"calendar_event_id": objectName,
		})
	}
	accessToken, err := i.vault.GetAccessToken(ctx, interview.SpaceID, interview.RecruiterID)
	if err != nil {
		return err
	}
	return i.retry.Run(ctx, "calendar.update_event", func() error {
		return i.client.UpdateEvent(ctx, accessToken, interview.CalendarEventID, *req)
	})
}

// DeleteInterviewEvent удаляет событие по возможности, ошибки только логируются
func (i impl) DeleteInterviewEvent(ctx context.Context, interviewID string) {
	logger := log.WithField("interview_id", interviewID)
	interview, err := i.interviewStore.GetByID(interviewID)
	if err != nil || interview == nil {
		logger.WithError(err).Error("интервью для удаления события не найдено")
		return
	}
	if interview.CalendarEventID == "" || interview.SyncMethod != models.SyncMethodProvider {
		return
	}
	accessToken, err := i.vault.GetAccessToken(ctx, interview.SpaceID, interview.RecruiterID)
	if err != nil {
		logger.WithError(err).Warn("не удалось получить токен для удаления события")
		return
	}
	err = i.retry.Run(ctx, "calendar.delete_event", func() error {
		return i.client.DeleteEvent(ctx, accessToken, interview.CalendarEventID)
	})
	if err != nil {
		logger.WithError(err).Warn("не удалось удалить событие календаря")
	}
}

func (i impl) buildEventRequest(interviewID string) (*dbmodels.Interview, *calendarapimodels.EventRequest, error) {
	interview, err := i.interviewStore.GetByID(interviewID)
	if err != nil {
		return nil, nil, err
	}
	if interview == nil {
		return nil, nil, errors.New("интервью не найдено")
	}
	if interview.ScheduledTime == nil {
		return nil, nil, errors.New("у интервью не назначено время")
	}
	if interview.Applicant == nil {
		return nil, nil, errors.New("у интервью не заполнен кандидат")
	}
	recruiter, err := i.spaceUsersStore.GetByID(interview.RecruiterID)
	if err != nil {
		return nil, nil, err
	}
	if recruiter == nil {
		return nil, nil, errors.New("рекрутер интервью не найден")
	}
	vacancyName := ""
	if interview.Vacancy != nil {
		vacancyName = interview.Vacancy.VacancyName
	}
	start := *interview.ScheduledTime
	req := calendarapimodels.EventRequest{
		Summary:     fmt.Sprintf("Собеседование: %v", interview.Applicant.GetFIO()),
		Description: fmt.Sprintf("Вакансия: %v", vacancyName),
		Start:       start,
		End:         start.Add(time.Duration(config.Conf.Negotiation.SlotDurationMin) * time.Minute),
		Attendees: []calendarapimodels.EventAttendee{
			{Email: interview.Applicant.Email, Name: interview.Applicant.GetFIO()},
			{Email: recruiter.Email, Name: recruiter.GetFullName()},
		},
	}
	return interview, &req, nil
}
