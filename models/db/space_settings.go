package dbmodels

import (
	"hr-scheduler-backend/models"
)

type SpaceSetting struct {
	BaseModel
	SpaceID string                  `gorm:"type:varchar(36);index:idx_setting_code"`
	Name    string                  `gorm:"type:varchar(255)"`
	Code    models.SpaceSettingCode `gorm:"type:varchar(255);index:idx_setting_code"`
	Value   string                  `gorm:"type:varchar(500)"`
}

var DefaultSpaceSenderEmail = SpaceSetting{
	Name:  "почта, с которой отправляются письма кандидатам",
	Code:  models.SpaceSenderEmail,
	Value: "",
}

var DefaultCalendarClientIDSetting = SpaceSetting{
	Name:  "client_id для календарного провайдера",
	Code:  models.CalendarClientIDSetting,
	Value: "",
}

var DefaultCalendarClientSecretSetting = SpaceSetting{
	Name:  "client_secret для календарного провайдера",
	Code:  models.CalendarClientSecretSetting,
	Value: "",
}

var DefaultNegotiationBotSetting = SpaceSetting{
	Name:  "включен ли бот согласования времени интервью",
	Code:  models.NegotiationBotSetting,
	Value: "false",
}

var DefaultAIExtractSetting = SpaceSetting{
	Name:  "разбор доступности кандидата через YandexGPT",
	Code:  models.AIExtractSetting,
	Value: "false",
}

var DefaultAIReplySetting = SpaceSetting{
	Name:  "генерация ответов кандидату через YandexGPT",
	Code:  models.AIReplySetting,
	Value: "false",
}

var DefaultSettinsMap = map[models.SpaceSettingCode]SpaceSetting{
	models.SpaceSenderEmail:            DefaultSpaceSenderEmail,
	models.CalendarClientIDSetting:     DefaultCalendarClientIDSetting,
	models.CalendarClientSecretSetting: DefaultCalendarClientSecretSetting,
	models.NegotiationBotSetting:       DefaultNegotiationBotSetting,
	models.AIExtractSetting:            DefaultAIExtractSetting,
	models.AIReplySetting:              DefaultAIReplySetting,
}
