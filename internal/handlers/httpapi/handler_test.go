package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rollforge/roll-api/internal/dicelang"
	"github.com/rollforge/roll-api/internal/errors"
	"github.com/rollforge/roll-api/internal/handlers/httpapi"
	"github.com/rollforge/roll-api/internal/orchestrators/roller"
	rollermock "github.com/rollforge/roll-api/internal/orchestrators/roller/mock"
	"github.com/rollforge/roll-api/internal/repositories/rollhistory"
)

func newTestServer(t *testing.T) (*rollermock.MockService, *http.ServeMux) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := rollermock.NewMockService(ctrl)

	handler, err := httpapi.NewHandler(&httpapi.Config{RollService: mockService})
	require.NoError(t, err)

	mux := http.NewServeMux()
	handler.Register(mux)
	return mockService, mux
}

func TestNewHandlerRequiresService(t *testing.T) {
	_, err := httpapi.NewHandler(&httpapi.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RollService")
}

func TestHandleRoll(t *testing.T) {
	mockService, mux := newTestServer(t)

	result := &dicelang.RollResult{
		Expression: "2d6+3",
		Total:      10,
		Details:    "(2d6 [4, 3] = 7) + 3 = **10**",
	}
	mockService.EXPECT().
		Roll(gomock.Any(), &roller.RollInput{
			EntityID:   "char-123",
			Context:    "combat",
			Expression: "2d6+3",
			Label:      "Damage",
		}).
		Return(&roller.RollOutput{
			Result:  result,
			Display: "**Damage**\n`2d6+3` → (2d6 [4, 3] = 7) + 3 = **10**",
		}, nil)

	body := `{"entity_id":"char-123","context":"combat","expression":"2d6+3","label":"Damage"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/roll", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp httpapi.RollResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 10, resp.Results[0].Total)
	assert.Contains(t, resp.Display, "**Damage**")
}

func TestHandleRollMultiple(t *testing.T) {
	mockService, mux := newTestServer(t)

	mockService.EXPECT().
		RollMultiple(gomock.Any(), &roller.RollMultipleInput{
			Expression: "d6",
			Times:      3,
		}).
		Return(&roller.RollMultipleOutput{
			Results: []*dicelang.RollResult{
				{Expression: "d6", Total: 2},
				{Expression: "d6", Total: 6},
				{Expression: "d6", Total: 4},
			},
		}, nil)

	body := `{"expression":"d6","times":3}`
	req := httptest.NewRequest(http.MethodPost, "/v1/roll", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpapi.RollResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 3)
	assert.Empty(t, resp.Display)
}

func TestHandleRollErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "syntax error",
			serviceErr: errors.InvalidArgument("Empty expression"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "cap exceeded",
			serviceErr: errors.ResourceExhausted("Too many dice"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "RESOURCE_EXHAUSTED",
		},
		{
			name:       "unknown variable",
			serviceErr: errors.NotFoundf("unknown variable @str"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, mux := newTestServer(t)
			mockService.EXPECT().
				Roll(gomock.Any(), gomock.Any()).
				Return(nil, tt.serviceErr)

			req := httptest.NewRequest(http.MethodPost, "/v1/roll", strings.NewReader(`{"expression":"x"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp["code"])
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestHandleRollBadBody(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/roll", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleValidate(t *testing.T) {
	mockService, mux := newTestServer(t)

	mockService.EXPECT().
		Validate(gomock.Any(), &roller.ValidateInput{Expression: "101d6"}).
		Return(&roller.ValidateOutput{Valid: false, Error: "Too many dice"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(`{"expression":"101d6"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dicelang.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "Too many dice", resp.Error)
}

func TestHandleGetHistory(t *testing.T) {
	mockService, mux := newTestServer(t)

	session := &rollhistory.Session{
		EntityID:  "char-123",
		Context:   "combat",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Entries: []rollhistory.Entry{
			{RollID: "roll_1", Expression: "d20", Total: 17},
		},
	}
	mockService.EXPECT().
		GetHistory(gomock.Any(), &roller.GetHistoryInput{
			EntityID: "char-123",
			Context:  "combat",
		}).
		Return(&roller.GetHistoryOutput{Session: session}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/history?entity_id=char-123&context=combat", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpapi.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Session)
	assert.Len(t, resp.Session.Entries, 1)
	assert.Equal(t, "roll_1", resp.Session.Entries[0].RollID)
}

func TestHandleGetHistoryNotFound(t *testing.T) {
	mockService, mux := newTestServer(t)

	mockService.EXPECT().
		GetHistory(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("session not found"))

	req := httptest.NewRequest(http.MethodGet, "/v1/history?entity_id=x&context=y", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleClearHistory(t *testing.T) {
	mockService, mux := newTestServer(t)

	mockService.EXPECT().
		ClearHistory(gomock.Any(), &roller.ClearHistoryInput{
			EntityID: "char-123",
			Context:  "combat",
		}).
		Return(&roller.ClearHistoryOutput{EntriesDeleted: 4}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/history?entity_id=char-123&context=combat", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpapi.ClearHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.EntriesDeleted)
}
