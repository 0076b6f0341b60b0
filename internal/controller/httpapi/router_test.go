package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/schedule_lock/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type fakeLockService struct {
	calls     []service.ToggleLockCommand
	result    *service.LockResult
	err       error
	status    *service.LockStatus
	statusErr error
	panicMsg  string
}

func (f *fakeLockService) ToggleLock(ctx context.Context, cmd service.ToggleLockCommand) (*service.LockResult, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeLockService) Status(ctx context.Context) (*service.LockStatus, error) {
	return f.status, f.statusErr
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(svc *fakeLockService, pingErr error) *gin.Engine {
	return NewRouter(
		RouterConfig{JWTSecret: testSecret, CORSOrigins: []string{"*"}},
		svc,
		fakePinger{err: pingErr},
		zap.NewNop(),
	)
}

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@fit.ba",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func doRequest(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestToggleLock_Forbidden(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"no token", func(t *testing.T) string { return "" }},
		{"garbage token", func(t *testing.T) string { return "not-a-jwt" }},
		{"wrong secret", func(t *testing.T) string { return signToken(t, "other", RoleAdmin) }},
		{"not admin", func(t *testing.T) string { return signToken(t, testSecret, "PROFESSOR") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeLockService{}
			w := doRequest(newTestRouter(svc, nil), http.MethodPost, "/api/schedule-lock", tt.token(t),
				`{"action":"toggle_lock","is_locked":true,"winter_schedule_id":1,"summer_schedule_id":2}`)

			assert.Equal(t, http.StatusForbidden, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Nemate dozvolu za ovu akciju.", body["message"])
			assert.Empty(t, svc.calls)
		})
	}
}

func TestToggleLock_WrongMethod(t *testing.T) {
	svc := &fakeLockService{}
	w := doRequest(newTestRouter(svc, nil), http.MethodPut, "/api/schedule-lock", signToken(t, testSecret, RoleAdmin), `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Samo POST zahtevi su dozvoljeni.", decode(t, w)["message"])
	assert.Empty(t, svc.calls)
}

func TestToggleLock_MissingParams(t *testing.T) {
	bodies := []string{
		``,
		`[]`,
		`{"is_locked":true}`,
		`{"action":"toggle_lock"}`,
		`{"action":null,"is_locked":true}`,
		`{"action":"toggle_lock","is_locked":"maybe"}`,
	}

	token := signToken(t, testSecret, RoleAdmin)
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			svc := &fakeLockService{}
			w := doRequest(newTestRouter(svc, nil), http.MethodPost, "/api/schedule-lock", token, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Nedostaju potrebni parametri.", decode(t, w)["message"])
			assert.Empty(t, svc.calls)
		})
	}
}

func TestToggleLock_ServiceErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"unknown action", service.ErrUnknownAction, http.StatusBadRequest, "Nepoznata akcija: archive"},
		{"invalid ids", service.ErrInvalidScheduleID, http.StatusBadRequest, "Neispravan winter ili summer schedule_id."},
		{"database", errors.New("update winter schedule: connection refused"), http.StatusInternalServerError,
			"Greška baze podataka: update winter schedule: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeLockService{err: tt.err}
			w := doRequest(newTestRouter(svc, nil), http.MethodPost, "/api/schedule-lock", signToken(t, testSecret, RoleAdmin),
				`{"action":"archive","is_locked":true,"winter_schedule_id":1,"summer_schedule_id":2}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestToggleLock_Success(t *testing.T) {
	year := int64(3)
	svc := &fakeLockService{
		result: &service.LockResult{
			Success:            true,
			Message:            "Zimski raspored ID 10 (4 termina) i Ljetnji raspored ID 20 (2 termina) su zaključani.",
			IsLocked:           true,
			WinterScheduleID:   10,
			SummerScheduleID:   20,
			WinterRowsAffected: 4,
			SummerRowsAffected: 2,
			TotalRowsAffected:  6,
			OccupancyDebug: service.OccupancyDebug{
				ActiveYearID: &year,
				EventsFound:  3,
				RowsInserted: 5,
				ScheduleIDs:  []int64{10, 20},
				SemesterMap:  map[string][]int{"10": {1, 3, 5}, "20": {2, 4, 6}},
			},
		},
	}

	w := doRequest(newTestRouter(svc, nil), http.MethodPost, "/api/schedule-lock", signToken(t, testSecret, RoleAdmin),
		`{"action":"toggle_lock","is_locked":"1","winter_schedule_id":"10","summer_schedule_id":20}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, service.ToggleLockCommand{
		Action:           "toggle_lock",
		IsLocked:         true,
		WinterScheduleID: 10,
		SummerScheduleID: 20,
	}, svc.calls[0])

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["is_locked"])
	assert.EqualValues(t, 10, body["winter_schedule_id"])
	assert.EqualValues(t, 20, body["summer_schedule_id"])
	assert.EqualValues(t, 4, body["winter_rows_affected"])
	assert.EqualValues(t, 2, body["summer_rows_affected"])
	assert.EqualValues(t, 6, body["total_rows_affected"])

	debug, ok := body["occupancy_debug"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, debug["active_year_id"])
	assert.EqualValues(t, 3, debug["events_found"])
	assert.EqualValues(t, 5, debug["rows_inserted"])
	assert.Len(t, debug["schedule_ids"], 2)
	assert.Contains(t, debug["semester_map"], "20")

	assert.NotEmpty(t, w.Header().Get(headerRequestID))
}

func TestToggleLock_DefaultsScheduleIDs(t *testing.T) {
	svc := &fakeLockService{err: service.ErrInvalidScheduleID}
	w := doRequest(newTestRouter(svc, nil), http.MethodPost, "/api/schedule-lock", signToken(t, testSecret, RoleAdmin),
		`{"action":"toggle_lock","is_locked":0,"winter_schedule_id":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, svc.calls, 1)
	assert.False(t, svc.calls[0].IsLocked)
	assert.Zero(t, svc.calls[0].WinterScheduleID)
	assert.Zero(t, svc.calls[0].SummerScheduleID)
}

func TestToggleLock_ScheduleIDsAreDecimal(t *testing.T) {
	svc := &fakeLockService{result: &service.LockResult{Success: true}}
	w := doRequest(newTestRouter(svc, nil), http.MethodPost, "/api/schedule-lock", signToken(t, testSecret, RoleAdmin),
		`{"action":"toggle_lock","is_locked":true,"winter_schedule_id":"010","summer_schedule_id":" 20"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.calls, 1)
	assert.EqualValues(t, 10, svc.calls[0].WinterScheduleID)
	assert.EqualValues(t, 20, svc.calls[0].SummerScheduleID)
}

func TestToggleLock_PanicIsRecovered(t *testing.T) {
	svc := &fakeLockService{panicMsg: "boom"}
	w := doRequest(newTestRouter(svc, nil), http.MethodPost, "/api/schedule-lock", signToken(t, testSecret, RoleAdmin),
		`{"action":"toggle_lock","is_locked":true,"winter_schedule_id":1,"summer_schedule_id":2}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Greška: boom", decode(t, w)["message"])
}

func TestStatus(t *testing.T) {
	svc := &fakeLockService{
		status: &service.LockStatus{IsLocked: true, ConfigValue: "0", Consistent: false, LockedEvents: 12, TotalEvents: 40},
	}
	w := doRequest(newTestRouter(svc, nil), http.MethodGet, "/api/schedule-lock/status", signToken(t, testSecret, RoleAdmin), "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["is_locked"])
	assert.Equal(t, false, body["consistent"])
	assert.EqualValues(t, 12, body["locked_events"])
	assert.Nil(t, body["active_year_id"])
}

func TestStatus_Error(t *testing.T) {
	svc := &fakeLockService{statusErr: errors.New("timeout")}
	w := doRequest(newTestRouter(svc, nil), http.MethodGet, "/api/schedule-lock/status", signToken(t, testSecret, RoleAdmin), "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Greška baze podataka: timeout", decode(t, w)["message"])
}

func TestHealthz(t *testing.T) {
	w := doRequest(newTestRouter(&fakeLockService{}, nil), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(newTestRouter(&fakeLockService{}, errors.New("down")), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDIsKept(t *testing.T) {
	const id = "3f1c6a52-8f0e-4d8a-9b1e-2f9c1d7e5a10"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, id)
	w := httptest.NewRecorder()
	newTestRouter(&fakeLockService{}, nil).ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(headerRequestID))
}
