package dbmodels

import (
	"time"

	"hr-scheduler-backend/models"
)

type Interview struct {
	BaseSpaceModel
	ApplicantID string     `gorm:"type:varchar(36);index"`
	Applicant   *Applicant `gorm:"foreignKey:ApplicantID"`
	VacancyID   string     `gorm:"type:varchar(36);index"`
	Vacancy     *Vacancy   `gorm:"foreignKey:VacancyID"`
	RecruiterID string     `gorm:"type:varchar(36);index"`
	Status      models.InterviewStatus `gorm:"type:varchar(50)"`
	ScheduledTime         *time.Time
	ConfirmationDeadline  *time.Time
	SlotSelectionDeadline *time.Time
	// идентификатор события у календарного провайдера либо объект ics в s3
	CalendarEventID string                    `gorm:"type:varchar(255)"`
	SyncMethod      models.CalendarSyncMethod `gorm:"type:varchar(20)"`
	// оценка риска неявки кандидата
	NoShowRisk *float64
	RiskLevel  models.RiskLevel `gorm:"type:varchar(10)"`
}
