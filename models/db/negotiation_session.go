package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"hr-scheduler-backend/models"
)

type NegotiationSession struct {
	BaseSpaceModel
	InterviewID string     `gorm:"type:varchar(36);index"`
	Interview   *Interview `gorm:"foreignKey:InterviewID"`
	Round       int
	State       models.NegotiationState `gorm:"type:varchar(50)"`
	History     NegotiationHistory      `gorm:"type:jsonb"`
	// слоты, предложенные кандидату в последнем раунде
	SuggestedSlots SuggestedSlots `gorm:"type:jsonb"`
	// дни недели из последнего разобранного окна доступности
	PreferredDays pq.StringArray `gorm:"type:text[]"`
}

type NegotiationHistory []ChatEntry

type ChatEntry struct {
	Role      models.ChatRole `json:"role"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
}

func (j NegotiationHistory) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *NegotiationHistory) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type SuggestedSlots []SlotWindow

type SlotWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (j SuggestedSlots) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *SuggestedSlots) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
