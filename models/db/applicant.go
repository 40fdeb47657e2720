package dbmodels

import (
	"fmt"
	"strings"
	"time"
)

type Applicant struct {
	BaseSpaceModel
	FirstName   string `gorm:"type:varchar(150)"`
	LastName    string `gorm:"type:varchar(150)"`
	MiddleName  string `gorm:"type:varchar(150)"`
	Email       string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(20)"`
	Address     string `gorm:"type:varchar(255)"`
	CoverLetter string
	ResumeUrl   string    `gorm:"type:varchar(500)"`
	VacancyID   string    `gorm:"type:varchar(36);index"`
	Vacancy     *Vacancy  `gorm:"foreignKey:VacancyID"`
	NegotiationDate time.Time
}

func (r Applicant) GetFIO() string {
	fio := strings.TrimSpace(fmt.Sprintf("%v %v", r.LastName, r.FirstName))
	return strings.TrimSpace(fmt.Sprintf("%v %v", fio, r.MiddleName))
}
