package dbmodels

import (
	"time"
)

// токены делегированного доступа хранятся только в зашифрованном виде
type CalendarCredential struct {
	BaseSpaceModel
	RecruiterID  string `gorm:"type:varchar(36);index:idx_cred_recruiter"`
	AccessToken  []byte
	RefreshToken []byte
	ExpiresAt    time.Time
}
