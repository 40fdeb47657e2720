package negotiationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hr-scheduler-backend/models"
	dbmodels "hr-scheduler-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.NegotiationSession) (id string, err error)
	Save(rec *dbmodels.NegotiationSession) error
	GetByID(id string) (rec *dbmodels.NegotiationSession, err error)
	// последняя по времени сессия интервью (активная, если она есть)
	GetLastByInterview(interviewID string) (rec *dbmodels.NegotiationSession, err error)
	ListEscalated(spaceID string) ([]dbmodels.NegotiationSession, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.NegotiationSession) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Save(rec *dbmodels.NegotiationSession) error {
	return i.db.Omit(clause.Associations).
		Save(rec).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.NegotiationSession, error) {
	rec := dbmodels.NegotiationSession{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetLastByInterview(interviewID string) (*dbmodels.NegotiationSession, error) {
	rec := dbmodels.NegotiationSession{}
	err := i.db.
		Where("interview_id = ?", interviewID).
		Order("created_at desc").
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

func (i impl) ListEscalated(spaceID string) (list []dbmodels.NegotiationSession, err error) {
	list = []dbmodels.NegotiationSession{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("state = ?", models.NegotiationStateEscalated).
		Order("created_at").
		Preload("Interview").
		Preload("Interview.Applicant").
		Preload("Interview.Vacancy").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
