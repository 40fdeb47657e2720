package vault

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-scheduler-backend/config"
	calendarclient "hr-scheduler-backend/lib/calendar/client"
	calendarstore "hr-scheduler-backend/lib/calendar/store"
	"hr-scheduler-backend/db"
	spacesettingsstore "hr-scheduler-backend/lib/space/settings/store"
	"hr-scheduler-backend/models"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	dbmodels "hr-scheduler-backend/models/db"
)

// у рекрутера нет подключенного календаря
var ErrNoCredential = errors.New("календарь рекрутера не подключен")

type Provider interface {
	// SaveTokens шифрует и сохраняет токены делегированного доступа рекрутера
	SaveTokens(spaceID, recruiterID string, token calendarapimodels.ResponseToken) error
	// GetAccessToken возвращает действующий access token,
	// прозрачно обновляя его по refresh token при истечении срока
	GetAccessToken(ctx context.Context, spaceID, recruiterID string) (string, error)
	HasCredential(spaceID, recruiterID string) bool
}

var Instance Provider

func NewHandler() error {
	key, err := DecodeKey(config.Conf.Calendar.TokenSecret)
	if err != nil {
		return err
	}
	Instance = &impl{
		key:                key,
		store:              calendarstore.NewInstance(db.DB),
		spaceSettingsStore: spacesettingsstore.NewInstance(db.DB),
		client:             calendarclient.Instance,
	}
	return nil
}

type impl struct {
	key                []byte
	store              calendarstore.Provider
	spaceSettingsStore spacesettingsstore.Provider
	client             calendarclient.Provider
}

func (i impl) SaveTokens(spaceID, recruiterID string, token calendarapimodels.ResponseToken) error {
	accessEnc, err := EncryptToken(i.key, token.AccessToken)
	if err != nil {
		return errors.Wrap(err, "ошибка шифрования access token")
	}
	refreshEnc, err := EncryptToken(i.key, token.RefreshToken)
	if err != nil {
		return errors.Wrap(err, "ошибка шифрования refresh token")
	}
	rec := dbmodels.CalendarCredential{
		RecruiterID:  recruiterID,
		AccessToken:  accessEnc,
		RefreshToken: refreshEnc,
		ExpiresAt:    time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}
	rec.SpaceID = spaceID
	return i.store.Upsert(rec)
}

func (i impl) HasCredential(spaceID, recruiterID string) bool {
	rec, err := i.store.GetByRecruiter(spaceID, recruiterID)
	if err != nil {
		log.WithError(err).
			WithField("space_id", spaceID).
			WithField("recruiter_id", recruiterID).
			Error("ошибка чтения учетных данных календаря")
		return false
	}
	return rec != nil
}

func (i impl) GetAccessToken(ctx context.Context, spaceID, recruiterID string) (string, error) {
	rec, err := i.store.GetByRecruiter(spaceID, recruiterID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", ErrNoCredential
	}
	if time.Now().Before(rec.ExpiresAt) {
		return DecryptToken(i.key, rec.AccessToken)
	}
	// срок истек — обмениваем refresh token до обращения к провайдеру
	return i.refresh(ctx, spaceID, rec)
}

func (i impl) refresh(ctx context.Context, spaceID string, rec *dbmodels.CalendarCredential) (string, error) {
	refreshToken, err := DecryptToken(i.key, rec.RefreshToken)
	if err != nil {
		return "", err
	}
	clientID, err := i.spaceSettingsStore.GetValueByCode(spaceID, models.CalendarClientIDSetting)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения настройки ClientID календаря")
	}
	clientSecret, err := i.spaceSettingsStore.GetValueByCode(spaceID, models.CalendarClientSecretSetting)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения настройки ClientSecret календаря")
	}
	token, err := i.client.RefreshToken(ctx, calendarapimodels.RefreshTokenRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка обновления токена календаря")
	}
	accessEnc, err := EncryptToken(i.key, token.AccessToken)
	if err != nil {
		return "", err
	}
	newRefresh := token.RefreshToken
	if newRefresh == "" {
		// провайдер может не выдавать новый refresh token
		newRefresh = refreshToken
	}
	refreshEnc, err := EncryptToken(i.key, newRefresh)
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	if err = i.store.UpdateTokens(rec.ID, accessEnc, refreshEnc, expiresAt); err != nil {
		return "", errors.Wrap(err, "ошибка сохранения обновленного токена")
	}
	return token.AccessToken, nil
}
