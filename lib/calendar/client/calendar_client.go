package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
)

type Provider interface {
	GetLoginUri(clientID, spaceID string) (string, error)
	RequestToken(ctx context.Context, req calendarapimodels.RequestToken) (*calendarapimodels.ResponseToken, error)
	RefreshToken(ctx context.Context, req calendarapimodels.RefreshTokenRequest) (*calendarapimodels.ResponseToken, error)

	// занятые интервалы календаря рекрутера за период
	FreeBusy(ctx context.Context, accessToken string, req calendarapimodels.FreeBusyRequest) (calendarapimodels.FreeBusyResponse, error)

	CreateEvent(ctx context.Context, accessToken string, req calendarapimodels.EventRequest) (eventID string, err error)
	UpdateEvent(ctx context.Context, accessToken, eventID string, req calendarapimodels.EventRequest) error
	DeleteEvent(ctx context.Context, accessToken, eventID string) error
}

var Instance Provider

type impl struct {
	host        string
	redirectUri string
}

func NewProvider(host, redirectUri string) {
	Instance = &impl{
		host:        host,
		redirectUri: redirectUri,
	}
}

const (
	tokenPath    string = "/oauth/token"
	oAuthPattern string = "%v/oauth/authorize?response_type=code&client_id=%v&state=%v&redirect_uri=%v"
	freeBusyPath string = "/freeBusy"
	eventsPath   string = "/events"
	eventPath    string = "/events/%v"
)

func (i impl) GetLoginUri(clientID, spaceID string) (string, error) {
	redirectUri, err := url.QueryUnescape(i.redirectUri)
	if err != nil {
		return "", errors.Wrap(err, "ошибка формирования ссылки")
	}
	return fmt.Sprintf(oAuthPattern, i.host, clientID, spaceID, redirectUri), nil
}

func (i impl) RequestToken(ctx context.Context, req calendarapimodels.RequestToken) (*calendarapimodels.ResponseToken, error) {
	data := url.Values{}
	data.Set("client_id", req.ClientID)
	data.Set("client_secret", req.ClientSecret)
	data.Set("code", req.Code)
	data.Set("redirect_uri", i.redirectUri)
	data.Set("grant_type", "authorization_code")
	return i.requestTokenForm(ctx, data)
}

func (i impl) RefreshToken(ctx context.Context, req calendarapimodels.RefreshTokenRequest) (*calendarapimodels.ResponseToken, error) {
	data := url.Values{}
	data.Set("client_id", req.ClientID)
	data.Set("client_secret", req.ClientSecret)
	data.Set("refresh_token", req.RefreshToken)
	data.Set("grant_type", "refresh_token")
	return i.requestTokenForm(ctx, data)
}

func (i impl) requestTokenForm(ctx context.Context, data url.Values) (*calendarapimodels.ResponseToken, error) {
	uri := i.host + tokenPath
	r, _ := http.NewRequestWithContext(ctx, "POST", uri, strings.NewReader(data.Encode()))
	r.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	resp := calendarapimodels.ResponseToken{}

	logger := log.WithField("external_request", uri)
	err := i.sendRequest(logger, r, &resp, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) FreeBusy(ctx context.Context, accessToken string, req calendarapimodels.FreeBusyRequest) (calendarapimodels.FreeBusyResponse, error) {
	uri := i.host + freeBusyPath
	logger := log.WithField("external_request", uri)
	resp := calendarapimodels.FreeBusyResponse{}
	body, err := json.Marshal(req)
	if err != nil {
		return resp, err
	}
	r, _ := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewReader(body))
	r.Header.Add("Content-Type", "application/json")
	err = i.sendRequest(logger, r, &resp, accessToken)
	return resp, err
}

func (i impl) CreateEvent(ctx context.Context, accessToken string, req calendarapimodels.EventRequest) (string, error) {
	uri := i.host + eventsPath
	logger := log.WithField("external_request", uri)
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	r, _ := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewReader(body))
	r.Header.Add("Content-Type", "application/json")
	resp := calendarapimodels.EventResponse{}
	err = i.sendRequest(logger, r, &resp, accessToken)
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("провайдер не вернул идентификатор события")
	}
	return resp.ID, nil
}

func (i impl) UpdateEvent(ctx context.Context, accessToken, eventID string, req calendarapimodels.EventRequest) error {
	uri := i.host + fmt.Sprintf(eventPath, eventID)
	logger := log.WithField("external_request", uri)
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	r, _ := http.NewRequestWithContext(ctx, "PUT", uri, bytes.NewReader(body))
	r.Header.Add("Content-Type", "application/json")
	return i.sendRequest(logger, r, nil, accessToken)
}

func (i impl) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	uri := i.host + fmt.Sprintf(eventPath, eventID)
	logger := log.WithField("external_request", uri)
	r, _ := http.NewRequestWithContext(ctx, "DELETE", uri, nil)
	return i.sendRequest(logger, r, nil, accessToken)
}

func (i impl) sendRequest(logger *log.Entry, r *http.Request, respData interface{}, accessToken string) error {
	if accessToken != "" {
		r.Header.Add("Authorization", "Bearer "+accessToken)
	}
	client := &http.Client{}
	resp, err := client.Do(r)
	if err != nil {
		logger.WithError(err).Error("ошибка запроса к календарному провайдеру")
		return errors.Wrap(err, "ошибка запроса к календарному провайдеру")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "ошибка чтения ответа календарного провайдера")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.
			WithField("status_code", resp.StatusCode).
			WithField("response_body", string(body)).
			Error("календарный провайдер вернул ошибку")
		return errors.Errorf("календарный провайдер вернул ошибку: %v", resp.StatusCode)
	}
	if respData == nil || len(body) == 0 {
		return nil
	}
	if err = json.Unmarshal(body, respData); err != nil {
		return errors.Wrap(err, "ошибка разбора ответа календарного провайдера")
	}
	return nil
}
