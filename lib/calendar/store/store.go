package calendarstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "hr-scheduler-backend/models/db"
)

type Provider interface {
	GetByRecruiter(spaceID, recruiterID string) (rec *dbmodels.CalendarCredential, err error)
	Upsert(rec dbmodels.CalendarCredential) error
	UpdateTokens(id string, accessToken, refreshToken []byte, expiresAt time.Time) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByRecruiter(spaceID, recruiterID string) (*dbmodels.CalendarCredential, error) {
	rec := dbmodels.CalendarCredential{}
	err := i.db.
		Where("space_id = ?", spaceID).
		Where("recruiter_id = ?", recruiterID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Upsert(rec dbmodels.CalendarCredential) error {
	existed, err := i.GetByRecruiter(rec.SpaceID, rec.RecruiterID)
	if err != nil {
		return err
	}
	if existed != nil {
		rec.ID = existed.ID
	}
	return i.db.
		Save(&rec).
		Error
}

func (i impl) UpdateTokens(id string, accessToken, refreshToken []byte, expiresAt time.Time) error {
	updMap := map[string]interface{}{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_at":    expiresAt,
	}
	tx := i.db.
		Model(&dbmodels.CalendarCredential{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}
