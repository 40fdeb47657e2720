package models

type SpaceSettingCode string

const (
	// почта, с которой отправляются письма кандидатам
	SpaceSenderEmail SpaceSettingCode = "SenderEmail"
	// client_id для календарного провайдера
	CalendarClientIDSetting SpaceSettingCode = "CalendarClientID"
	// client_secret для календарного провайдера
	CalendarClientSecretSetting SpaceSettingCode = "CalendarClientSecret"
	// включен ли бот согласования времени интервью
	NegotiationBotSetting SpaceSettingCode = "NegotiationBotEnabled"
	// разбор доступности кандидата через YandexGPT
	AIExtractSetting SpaceSettingCode = "AIExtractEnabled"
	// генерация ответов кандидату через YandexGPT
	AIReplySetting SpaceSettingCode = "AIReplyEnabled"
)

type NegotiationState string

const (
	// ожидаем от кандидата его доступность
	NegotiationStateAwaitingAvailability NegotiationState = "awaiting_availability"
	// кандидату предложены слоты, ждем выбора
	NegotiationStateAwaitingSelection NegotiationState = "awaiting_selection"
	// передано рекрутеру
	NegotiationStateEscalated NegotiationState = "escalated"
)

type ChatRole string

const (
	ChatRoleCandidate ChatRole = "candidate"
	ChatRoleBot       ChatRole = "bot"
)

type ResponseType string

const (
	// просим кандидата уточнить, когда ему удобно
	ResponseTypeClarification ResponseType = "clarification"
	// предлагаем подходящие слоты
	ResponseTypeSlotSuggestions ResponseType = "slot_suggestions"
	// просим другие варианты времени
	ResponseTypeRequestAlternatives ResponseType = "request_alternatives"
	// диалог передан рекрутеру
	ResponseTypeEscalation ResponseType = "escalation"
)

type InterviewStatus string

const (
	InterviewStatusInvitationSent InterviewStatus = "invitation_sent"
	InterviewStatusScheduled      InterviewStatus = "scheduled"
	InterviewStatusCompleted      InterviewStatus = "completed"
	InterviewStatusNoShow         InterviewStatus = "no_show"
	InterviewStatusCancelled      InterviewStatus = "cancelled"
)

type CalendarSyncMethod string

const (
	// событие создано у календарного провайдера
	SyncMethodProvider CalendarSyncMethod = "provider"
	// провайдер недоступен, сформирован ics файл приглашения
	SyncMethodIcsFile CalendarSyncMethod = "ics_file"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)
