package calendarhandler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"hr-scheduler-backend/lib/utils/circuitbreaker"
	"hr-scheduler-backend/lib/utils/retry"
	"hr-scheduler-backend/models"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
	dbmodels "hr-scheduler-backend/models/db"
)

const (
	testSpaceID     = "space-1"
	testInterviewID = "interview-1"
	testRecruiterID = "recruiter-1"
	testEventID     = "event-1"
)

type fakeVault struct {
	token string
	err   error
}

func (f *fakeVault) SaveTokens(spaceID, recruiterID string, token calendarapimodels.ResponseToken) error {
	return nil
}
func (f *fakeVault) GetAccessToken(ctx context.Context, spaceID, recruiterID string) (string, error) {
	return f.token, f.err
}
func (f *fakeVault) HasCredential(spaceID, recruiterID string) bool { return f.err == nil }

type fakeClient struct {
	deleteCalls int
	deleteErrs  []error
}

func (f *fakeClient) GetLoginUri(clientID, spaceID string) (string, error) { return "", nil }
func (f *fakeClient) RequestToken(ctx context.Context, req calendarapimodels.RequestToken) (*calendarapimodels.ResponseToken, error) {
	return nil, nil
}
func (f *fakeClient) RefreshToken(ctx context.Context, req calendarapimodels.RefreshTokenRequest) (*calendarapimodels.ResponseToken, error) {
	return nil, nil
}
func (f *fakeClient) FreeBusy(ctx context.Context, accessToken string, req calendarapimodels.FreeBusyRequest) (calendarapimodels.FreeBusyResponse, error) {
	return calendarapimodels.FreeBusyResponse{}, nil
}
func (f *fakeClient) CreateEvent(ctx context.Context, accessToken string, req calendarapimodels.EventRequest) (string, error) {
	return testEventID, nil
}
func (f *fakeClient) UpdateEvent(ctx context.Context, accessToken, eventID string, req calendarapimodels.EventRequest) error {
	return nil
}
func (f *fakeClient) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	f.deleteCalls++
	if f.deleteCalls <= len(f.deleteErrs) {
		return f.deleteErrs[f.deleteCalls-1]
	}
	return nil
}

type fakeInterviewStore struct {
	rec     *dbmodels.Interview
	updates []map[string]interface{}
}

func (f *fakeInterviewStore) Create(rec dbmodels.Interview) (string, error) { return rec.ID, nil }
func (f *fakeInterviewStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}
func (f *fakeInterviewStore) GetByID(id string) (*dbmodels.Interview, error) {
	if f.rec != nil && f.rec.ID == id {
		return f.rec, nil
	}
	return nil, nil
}
func (f *fakeInterviewStore) ListPastByApplicant(applicantID, excludeID string) ([]dbmodels.Interview, error) {
	return nil, nil
}
func (f *fakeInterviewStore) ListUpcoming(limit int) ([]dbmodels.Interview, error) { return nil, nil }

func providerSyncedInterview() *dbmodels.Interview {
	rec := dbmodels.Interview{
		RecruiterID:     testRecruiterID,
		Status:          models.InterviewStatusScheduled,
		CalendarEventID: testEventID,
		SyncMethod:      models.SyncMethodProvider,
	}
	rec.ID = testInterviewID
	rec.SpaceID = testSpaceID
	return &rec
}

func newTestGateway(client *fakeClient, store *fakeInterviewStore) *impl {
	return &impl{
		vault:          &fakeVault{token: "access-token"},
		client:         client,
		interviewStore: store,
		breaker:        circuitbreaker.NewInstance(5, time.Minute),
		retry:          retry.NewInstance(3, 0),
	}
}

func TestDeleteInterviewEvent(t *testing.T) {
	ctx := context.Background()

	t.Run(`временный сбой провайдера гасится повторами`, func(t *testing.T) {
		client := &fakeClient{deleteErrs: []error{
			errors.New("провайдер недоступен"),
			errors.New("провайдер недоступен"),
		}}
		gateway := newTestGateway(client, &fakeInterviewStore{rec: providerSyncedInterview()})

		gateway.DeleteInterviewEvent(ctx, testInterviewID)
		require.Equal(t, 3, client.deleteCalls)
	})

	t.Run(`после исчерпания повторов ошибка не пробрасывается`, func(t *testing.T) {
		client := &fakeClient{deleteErrs: []error{
			errors.New("провайдер недоступен"),
			errors.New("провайдер недоступен"),
			errors.New("провайдер недоступен"),
		}}
		gateway := newTestGateway(client, &fakeInterviewStore{rec: providerSyncedInterview()})

		gateway.DeleteInterviewEvent(ctx, testInterviewID)
		require.Equal(t, 3, client.deleteCalls)
	})

	t.Run(`ics синхронизация не требует удаления у провайдера`, func(t *testing.T) {
		rec := providerSyncedInterview()
		rec.SyncMethod = models.SyncMethodIcsFile
		client := &fakeClient{}
		gateway := newTestGateway(client, &fakeInterviewStore{rec: rec})

		gateway.DeleteInterviewEvent(ctx, testInterviewID)
		require.Equal(t, 0, client.deleteCalls)
	})
}
