package negotiationhandler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-scheduler-backend/config"
	"hr-scheduler-backend/db"
	calendarhandler "hr-scheduler-backend/lib/calendar"
	"hr-scheduler-backend/lib/calendar/slots"
	interviewstore "hr-scheduler-backend/lib/interview/store"
	"hr-scheduler-backend/lib/negotiation/composer"
	"hr-scheduler-backend/lib/negotiation/extractor"
	negotiationstore "hr-scheduler-backend/lib/negotiation/store"
	"hr-scheduler-backend/lib/smtp"
	spacesettingsstore "hr-scheduler-backend/lib/space/settings/store"
	spaceusersstore "hr-scheduler-backend/lib/space/users/store"
	"hr-scheduler-backend/models"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	negotiationapimodels "hr-scheduler-backend/models/api/negotiation"
	dbmodels "hr-scheduler-backend/models/db"
)

var (
	ErrInterviewNotFound = errors.New("интервью не найдено")
	ErrSessionNotFound   = errors.New("сессия согласования не найдена")
	ErrBotDisabled       = errors.New("бот согласования времени отключен")
)

const suggestLimit = 3

type Provider interface {
	// StartNegotiation создает сессию по первому сообщению кандидата
	// и сразу обрабатывает его
	StartNegotiation(ctx context.Context, spaceID, interviewID, message string) (*negotiationapimodels.ProcessResult, error)
	ProcessMessage(ctx context.Context, spaceID string, req negotiationapimodels.NewMessageRequest) (*negotiationapimodels.ProcessResult, error)
	GetSession(spaceID, interviewID string) (*negotiationapimodels.SessionView, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		interviewStore:     interviewstore.NewInstance(db.DB),
		negotiationStore:   negotiationstore.NewInstance(db.DB),
		spaceSettingsStore: spacesettingsstore.NewInstance(db.DB),
		spaceUsersStore:    spaceusersstore.NewInstance(db.DB),
		extractor:          extractor.Instance,
		composer:           composer.Instance,
		calendar:           calendarhandler.Instance,
		emailSender:        smtp.Instance,
		maxRounds:          config.Conf.Negotiation.MaxRounds,
		sessionLocks:       map[string]*sync.Mutex{},
	}
}

type impl struct {
	interviewStore     interviewstore.Provider
	negotiationStore   negotiationstore.Provider
	spaceSettingsStore spacesettingsstore.Provider
	spaceUsersStore    spaceusersstore.Provider
	extractor          extractor.Provider
	composer           composer.Provider
	calendar           calendarhandler.Provider
	emailSender        smtp.Provider
	maxRounds          int

	// раунд и история — read-modify-write, обработка сообщений
	// одной сессии сериализуется
	mu           sync.Mutex
	sessionLocks map[string]*sync.Mutex
}

func (i *impl) lockSession(interviewID string) func() {
	i.mu.Lock()
	lock, ok := i.sessionLocks[interviewID]
	if !ok {
		lock = &sync.Mutex{}
		i.sessionLocks[interviewID] = lock
	}
	i.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}

func (i *impl) StartNegotiation(ctx context.Context, spaceID, interviewID, message string) (*negotiationapimodels.ProcessResult, error) {
	defer i.lockSession(interviewID)()
	interview, err := i.getCheckedInterview(spaceID, interviewID)
	if err != nil {
		return nil, err
	}
	session := dbmodels.NegotiationSession{
		InterviewID: interviewID,
		Round:       1,
		State:       models.NegotiationStateAwaitingAvailability,
		History: dbmodels.NegotiationHistory{
			{Role: models.ChatRoleCandidate, Message: message, Timestamp: time.Now()},
		},
	}
	session.SpaceID = spaceID
	id, err := i.negotiationStore.Create(session)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания сессии согласования")
	}
	session.ID = id
	return i.process(ctx, interview, &session, message)
}

func (i *impl) ProcessMessage(ctx context.Context, spaceID string, req negotiationapimodels.NewMessageRequest) (*negotiationapimodels.ProcessResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	defer i.lockSession(req.InterviewID)()
	interview, err := i.getCheckedInterview(spaceID, req.InterviewID)
	if err != nil {
		return nil, err
	}
	session, err := i.negotiationStore.GetLastByInterview(req.InterviewID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return i.process(ctx, interview, session, req.Message)
}

func (i *impl) GetSession(spaceID, interviewID string) (*negotiationapimodels.SessionView, error) {
	session, err := i.negotiationStore.GetLastByInterview(interviewID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.SpaceID != spaceID {
		return nil, ErrSessionNotFound
	}
	view := negotiationapimodels.SessionConvert(*session)
	return &view, nil
}

func (i *impl) getCheckedInterview(spaceID, interviewID string) (*dbmodels.Interview, error) {
	interview, err := i.interviewStore.GetByID(interviewID)
	if err != nil {
		return nil, err
	}
	if interview == nil || interview.SpaceID != spaceID {
		return nil, ErrInterviewNotFound
	}
	enabled, err := i.spaceSettingsStore.IsEnabled(spaceID, models.NegotiationBotSetting)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения настройки бота согласования")
	}
	if !enabled {
		return nil, ErrBotDisabled
	}
	if interview.Vacancy != nil && !interview.Vacancy.AutoScheduleEnabled {
		return nil, ErrBotDisabled
	}
	return interview, nil
}

// process — ядро машины состояний, вызывается под блокировкой сессии
func (i *impl) process(ctx context.Context, interview *dbmodels.Interview, session *dbmodels.NegotiationSession, message string) (*negotiationapimodels.ProcessResult, error) {
	logger := log.
		WithField("interview_id", interview.ID).
		WithField("session_id", session.ID).
		WithField("round", session.Round)

	if session.State == models.NegotiationStateEscalated {
		// терминальное состояние, диалог ведет рекрутер
		return &negotiationapimodels.ProcessResult{
			ResponseType: models.ResponseTypeEscalation,
			Message:      composer.Template(i.composeContext(models.ResponseTypeEscalation, interview, session, nil)),
			Session:      negotiationapimodels.SessionConvert(*session),
		}, nil
	}

	i.appendCandidateEntry(session, message)

	window := i.extractor.Extract(ctx, session.SpaceID, message)
	if window == nil {
		logger.Info("не удалось разобрать доступность, просим уточнение")
		return i.reply(ctx, interview, session, models.ResponseTypeClarification, nil)
	}

	matched, matchErr := i.matchSlots(ctx, interview, session, *window)
	if matchErr != nil {
		// сбой календаря не сжигает раунд кандидата
		logger.WithError(matchErr).Warn("календарь недоступен, просим другие варианты без списания раунда")
		return i.reply(ctx, interview, session, models.ResponseTypeRequestAlternatives, nil)
	}

	if len(matched) > 0 {
		if len(matched) > suggestLimit {
			matched = matched[:suggestLimit]
		}
		session.State = models.NegotiationStateAwaitingSelection
		session.SuggestedSlots = make(dbmodels.SuggestedSlots, 0, len(matched))
		for _, slot := range matched {
			session.SuggestedSlots = append(session.SuggestedSlots, dbmodels.SlotWindow{Start: slot.Start, End: slot.End})
		}
		return i.reply(ctx, interview, session, models.ResponseTypeSlotSuggestions, matched)
	}

	session.Round++
	if session.Round > i.maxRounds {
		session.State = models.NegotiationStateEscalated
		logger.WithField("round", session.Round).Info("бюджет раундов исчерпан, передаем рекрутеру")
		i.sendEscalationEmail(interview, session)
		return i.reply(ctx, interview, session, models.ResponseTypeEscalation, nil)
	}
	session.State = models.NegotiationStateAwaitingAvailability
	return i.reply(ctx, interview, session, models.ResponseTypeRequestAlternatives, nil)
}

func (i *impl) matchSlots(ctx context.Context, interview *dbmodels.Interview, session *dbmodels.NegotiationSession, window calendarapimodels.AvailabilityWindow) ([]calendarapimodels.Slot, error) {
	session.PreferredDays = window.PreferredDays
	// день конца окна включительно, сетка строится по [start, end)
	gridEnd := window.EndDate.AddDate(0, 0, 1)
	available, err := i.calendar.GetAvailableSlots(ctx, session.SpaceID, interview.RecruiterID, window.StartDate, gridEnd)
	if err != nil {
		return nil, err
	}
	return slots.Match(available, window), nil
}

func (i *impl) appendCandidateEntry(session *dbmodels.NegotiationSession, message string) {
	if len(session.History) > 0 {
		last := session.History[len(session.History)-1]
		// повторная доставка того же сообщения не дублирует историю
		if last.Role == models.ChatRoleCandidate && last.Message == message {
			return
		}
	}
	session.History = append(session.History, dbmodels.ChatEntry{
		Role:      models.ChatRoleCandidate,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func (i *impl) reply(ctx context.Context, interview *dbmodels.Interview, session *dbmodels.NegotiationSession, respType models.ResponseType, matched []calendarapimodels.Slot) (*negotiationapimodels.ProcessResult, error) {
	botMessage := i.composer.Compose(ctx, session.SpaceID, i.composeContext(respType, interview, session, matched))
	session.History = append(session.History, dbmodels.ChatEntry{
		Role:      models.ChatRoleBot,
		Message:   botMessage,
		Timestamp: time.Now(),
	})
	if err := i.negotiationStore.Save(session); err != nil {
		return nil, errors.Wrap(err, "ошибка сохранения сессии согласования")
	}
	return &negotiationapimodels.ProcessResult{
		ResponseType: respType,
		Message:      botMessage,
		Slots:        matched,
		Session:      negotiationapimodels.SessionConvert(*session),
	}, nil
}

func (i *impl) composeContext(respType models.ResponseType, interview *dbmodels.Interview, session *dbmodels.NegotiationSession, matched []calendarapimodels.Slot) negotiationapimodels.ComposeContext {
	composeCtx := negotiationapimodels.ComposeContext{
		ResponseType: respType,
		Slots:        matched,
		Round:        session.Round,
		MaxRounds:    i.maxRounds,
	}
	if interview.Applicant != nil {
		composeCtx.CandidateName = interview.Applicant.GetFIO()
	}
	if interview.Vacancy != nil {
		composeCtx.VacancyName = interview.Vacancy.VacancyName
	}
	return composeCtx
}

// письмо рекрутеру с полной перепиской, доставка best-effort
func (i *impl) sendEscalationEmail(interview *dbmodels.Interview, session *dbmodels.NegotiationSession) {
	logger := log.
		WithField("interview_id", interview.ID).
		WithField("session_id", session.ID)
	if i.emailSender == nil {
		logger.Warn("smtp клиент не настроен, письмо об эскалации не отправлено")
		return
	}
	recruiter, err := i.spaceUsersStore.GetByID(interview.RecruiterID)
	if err != nil || recruiter == nil {
		logger.WithError(err).Error("рекрутер для письма об эскалации не найден")
		return
	}
	sender, err := i.spaceSettingsStore.GetValueByCode(session.SpaceID, models.SpaceSenderEmail)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения адреса отправителя")
		return
	}
	candidateName := ""
	if interview.Applicant != nil {
		candidateName = interview.Applicant.GetFIO()
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Не удалось автоматически согласовать время интервью с кандидатом %v.\n", candidateName))
	sb.WriteString("Переписка:\n")
	for _, entry := range session.History {
		author := "Кандидат"
		if entry.Role == models.ChatRoleBot {
			author = "Бот"
		}
		sb.WriteString(fmt.Sprintf("%v (%v): %v\n", author, entry.Timestamp.Format("02.01.2006 15:04"), entry.Message))
	}
	if err = i.emailSender.SendEMail(sender, recruiter.Email, sb.String(), "Требуется ручное согласование интервью"); err != nil {
		logger.WithError(err).Error("ошибка отправки письма об эскалации")
	}
}
