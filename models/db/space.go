package dbmodels

type Space struct {
	BaseModel
	OrganizationName string `gorm:"type:varchar(255)"` // Юридическое название компании
	FullName         string `gorm:"type:varchar(255)"`
	IsActive         bool
}
