package spacestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "hr-scheduler-backend/models/db"
)

type Provider interface {
	GetActiveIds() ([]string, error)
	GetByID(spaceID string) (rec *dbmodels.Space, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetActiveIds() (ids []string, err error) {
	err = i.db.
		Model(&dbmodels.Space{}).
		Select("id").
		Where("is_active = true").
		Find(&ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) GetByID(spaceID string) (rec *dbmodels.Space, err error) {
	err = i.db.
		Where("id = ?", spaceID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}
