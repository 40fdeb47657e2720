package dbmodels

type Vacancy struct {
	BaseSpaceModel
	VacancyName string `gorm:"type:varchar(255)"`
	AuthorID    string `gorm:"type:varchar(36)"`
	// автоматическое согласование времени интервью ботом
	AutoScheduleEnabled bool
}
