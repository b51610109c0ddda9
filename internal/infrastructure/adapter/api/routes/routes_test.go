package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/account"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/bonus"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/settings"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/handler"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/logger"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/mailbox"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/session"
	timeadapter "github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/time"
	gatewaymocks "github.com/turaincash/mobcash-wallet/mocks/port/gateway"
)

const device = "device-1"

var (
	onexbet = entity.Platform{
		ID: "1xbet", Name: "1xBet", Enabled: true,
		MinDeposit: entity.AmountFromWhole(500), MaxDeposit: entity.AmountFromWhole(100000),
		MinWithdraw: entity.AmountFromWhole(1000), MaxWithdraw: entity.AmountFromWhole(50000),
	}
	mtn   = entity.Network{ID: 3, Name: "MTN", ActiveForDeposit: true, ActiveForWithdraw: true}
	bet11 = entity.BetID{ID: 11, UserAppID: "884422", App: "1xbet"}
	bet13 = entity.BetID{ID: 13, UserAppID: "777000", App: "1xbet"}
	phone = entity.UserPhone{ID: 21, Phone: "+2250500000000", Network: 3}
)

type testServer struct {
	router *gin.Engine
	gw     *gatewaymocks.MobcashGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := &gatewaymocks.MobcashGateway{}
	log := logger.NewNoopLogger()
	clock := timeadapter.NewFixedTimeProvider(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	box := mailbox.NewMemory()
	settingsSvc := settings.NewService(gw, clock, 0, log)

	registry := session.NewRegistry(func(flow entity.Flow, owner string) *wizard.Controller {
		return wizard.NewController(flow, owner, gw, box, settingsSvc, log)
	}, clock, 0, log)

	router := gin.New()
	SetupMiddlewares(router, log, clock, []string{"https://wallet.example"})
	SetupRoutes(router, Handlers{
		Wizard:  handler.NewWizardHandler(registry, log),
		Account: handler.NewAccountHandler(account.NewAccountUseCase(gw, box, log), log),
		Bonus:   handler.NewBonusHandler(bonus.NewBonusUseCase(gw, settingsSvc, log), account.NewHistoryUseCase(gw), log),
		Meta:    handler.NewMetaHandler(map[string]handler.HealthCheck{"mailbox": func() bool { return true }}),
	})
	return &testServer{router: router, gw: gw}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-ID", device)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type sessionBody struct {
	SessionID string         `json:"session_id"`
	State     map[string]any `json:"state"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) stubLists() {
	s.gw.On("ListPlatforms", mock.Anything).Return([]entity.Platform{onexbet}, nil).Maybe()
	s.gw.On("ListNetworks", mock.Anything).Return([]entity.Network{mtn}, nil).Maybe()
	s.gw.On("ListPhones", mock.Anything, "3").Return([]entity.UserPhone{phone}, nil).Maybe()
}

func (s *testServer) open(t *testing.T, flow string) sessionBody {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/wizard/"+flow+"/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[sessionBody](t, rec)
}

func TestMetaRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("should report health without a device id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","mailbox":"ok"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("should list countries", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/countries", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		countries := decode[[]entity.CountryOption](t, rec)
		assert.Equal(t, entity.Countries, countries)
	})

	t.Run("should require a device id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wizard/deposit/sessions", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "X-Device-ID")
	})

	t.Run("should answer CORS preflight for allowed origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/bet-ids", nil)
		req.Header.Set("Origin", "https://wallet.example")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://wallet.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestWizardRoutes(t *testing.T) {
	t.Run("should walk a deposit to a payment link", func(t *testing.T) {
		// Arrange
		s := newTestServer(t)
		s.stubLists()
		s.gw.On("ListBetIDs", mock.Anything, "1xbet").Return([]entity.BetID{bet11}, nil)
		s.gw.On("CreateDeposit", mock.MatchedBy(func(ctx context.Context) bool {
			return gateway.BearerToken(ctx) == "user-token"
		}), mock.MatchedBy(func(req *entity.TransactionRequest) bool {
			return req.Amount == entity.AmountFromWhole(1000) && req.UserAppID == "884422" && req.Network == 3
		})).Return(&entity.TransactionResult{Reference: "DEP-1", TransactionLink: "https://pay.example/1"}, nil).Once()

		opened := s.open(t, "deposit")
		base := "/wizard/sessions/" + opened.SessionID

		// Act
		steps := []struct {
			method, path string
			body         any
		}{
			{http.MethodPost, base + "/platform", map[string]any{"id": "1xbet", "advance": true}},
			{http.MethodPost, base + "/bet-id", map[string]any{"id": 11, "advance": true}},
			{http.MethodPost, base + "/network", map[string]any{"id": 3, "advance": true}},
			{http.MethodPost, base + "/phone", map[string]any{"id": 21, "advance": true}},
			{http.MethodPut, base + "/amount", map[string]any{"amount": "1000"}},
			{http.MethodPost, base + "/next", nil},
		}
		for _, step := range steps {
			rec := s.do(t, step.method, step.path, step.body)
			require.Equal(t, http.StatusOK, rec.Code, "%s %s: %s", step.method, step.path, rec.Body.String())
		}
		rec := s.do(t, http.MethodPost, base+"/confirm", nil)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Outcome wizard.Outcome `json:"outcome"`
			State   map[string]any `json:"state"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, wizard.ActionOpenLink, body.Outcome.Action)
		assert.Equal(t, "https://pay.example/1", body.Outcome.Link)
		assert.Equal(t, true, body.State["completed"])

		rec = s.do(t, http.MethodPost, base+"/back", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		s.gw.AssertExpectations(t)
	})

	t.Run("should resume a deposit after adding a bet ID", func(t *testing.T) {
		// Arrange
		s := newTestServer(t)
		s.stubLists()
		s.gw.On("ListBetIDs", mock.Anything, "1xbet").Return([]entity.BetID{bet11}, nil).Once()
		s.gw.On("ListBetIDs", mock.Anything, "1xbet").Return([]entity.BetID{bet11, bet13}, nil)
		s.gw.On("SearchUser", mock.Anything, mock.Anything).Return(&entity.BetAccount{UserID: 9, Name: "Awa", CurrencyID: 27}, nil)
		s.gw.On("CreateBetID", mock.Anything, gateway.BetIDInput{UserAppID: "777000", App: "1xbet"}).Return(&bet13, nil)

		first := s.open(t, "deposit")
		rec := s.do(t, http.MethodPost, "/wizard/sessions/"+first.SessionID+"/platform", map[string]any{"id": "1xbet", "advance": true})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		// Act
		rec = s.do(t, http.MethodPost, "/wizard/sessions/"+first.SessionID+"/detours/bet-id", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		detour := decode[struct {
			Intent map[string]any `json:"intent"`
		}](t, rec)

		rec = s.do(t, http.MethodPost, "/bet-ids", map[string]any{
			"platform_id": "1xbet",
			"user_app_id": "777000",
			"intent":      detour.Intent,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		added := decode[map[string]any](t, rec)
		require.NotNil(t, added["return"])

		resumed := s.open(t, "deposit")

		// Assert
		assert.Equal(t, float64(entity.StepNetwork), resumed.State["step"])
		assert.Equal(t, "consumed", resumed.State["return_status"])
		selection := resumed.State["selection"].(map[string]any)
		assert.Equal(t, "777000", selection["bet_id"].(map[string]any)["user_app_id"])

		// the replaced session is gone
		rec = s.do(t, http.MethodGet, "/wizard/sessions/"+first.SessionID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject steps out of order", func(t *testing.T) {
		s := newTestServer(t)
		s.stubLists()
		opened := s.open(t, "withdraw")

		rec := s.do(t, http.MethodPost, "/wizard/sessions/"+opened.SessionID+"/next", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, float64(errs.CodeValidation), decode[map[string]any](t, rec)["code"])
	})

	t.Run("should reject unknown flows and sessions", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodPost, "/wizard/transfer/sessions", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.do(t, http.MethodGet, "/wizard/sessions/nope", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, float64(errs.CodeSessionNotFound), decode[map[string]any](t, rec)["code"])
	})

	t.Run("should reject malformed selections", func(t *testing.T) {
		s := newTestServer(t)
		s.stubLists()
		opened := s.open(t, "deposit")

		rec := s.do(t, http.MethodPost, "/wizard/sessions/"+opened.SessionID+"/bet-id", map[string]any{"id": "x"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, float64(errs.CodeInvalidRequest), decode[map[string]any](t, rec)["code"])
	})

	t.Run("should surface throttled submissions with their retry hint", func(t *testing.T) {
		s := newTestServer(t)
		s.stubLists()
		s.gw.On("ListBetIDs", mock.Anything, "1xbet").Return([]entity.BetID{bet11}, nil)
		s.gw.On("CreateWithdrawal", mock.Anything, mock.Anything).Return(nil, &errs.APIError{
			StatusCode: http.StatusTooManyRequests,
			Method:     http.MethodPost,
			Path:       "/mobcash/transaction-withdrawal",
			Body:       map[string]any{"error_time_message": "2 minutes"},
		})

		opened := s.open(t, "withdraw")
		base := "/wizard/sessions/" + opened.SessionID
		for _, step := range []struct {
			method, path string
			body         any
		}{
			{http.MethodPost, base + "/platform", map[string]any{"id": "1xbet", "advance": true}},
			{http.MethodPost, base + "/bet-id", map[string]any{"id": 11, "advance": true}},
			{http.MethodPost, base + "/network", map[string]any{"id": 3, "advance": true}},
			{http.MethodPost, base + "/phone", map[string]any{"id": 21, "advance": true}},
			{http.MethodPut, base + "/amount", map[string]any{"amount": "2000"}},
			{http.MethodPut, base + "/withdrawal-code", map[string]any{"code": "AB12CD"}},
			{http.MethodPost, base + "/next", nil},
		} {
			rec := s.do(t, step.method, step.path, step.body)
			require.Equal(t, http.StatusOK, rec.Code, "%s %s: %s", step.method, step.path, rec.Body.String())
		}

		rec := s.do(t, http.MethodPost, base+"/confirm", nil)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, float64(errs.CodeRateLimited), body["code"])
		assert.Equal(t, "2 minutes", body["retry_after"])

		rec = s.do(t, http.MethodGet, base, nil)
		state := decode[sessionBody](t, rec).State
		assert.Equal(t, true, state["awaiting_confirmation"])
	})
}

func TestAccountAndBonusRoutes(t *testing.T) {
	t.Run("should map an unknown bet account to 422", func(t *testing.T) {
		s := newTestServer(t)
		s.gw.On("SearchUser", mock.Anything, mock.Anything).Return(&entity.BetAccount{}, nil)

		rec := s.do(t, http.MethodPost, "/bet-ids", map[string]any{"platform_id": "1xbet", "user_app_id": "123456"})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, float64(errs.CodeBetAccountNotFound), decode[map[string]any](t, rec)["code"])
	})

	t.Run("should delete a phone", func(t *testing.T) {
		s := newTestServer(t)
		s.gw.On("DeletePhone", mock.Anything, int64(21)).Return(nil)

		rec := s.do(t, http.MethodDelete, "/phones/21", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = s.do(t, http.MethodDelete, "/phones/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should split a stored phone for editing", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodGet, "/phones/editable?phone=%2B2250102030405", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0102030405", decode[map[string]any](t, rec)["local"])
	})

	t.Run("should pass upstream field errors through as 422", func(t *testing.T) {
		s := newTestServer(t)
		s.gw.On("UpdatePhone", mock.Anything, int64(21), mock.Anything).Return(nil, &errs.APIError{
			StatusCode: http.StatusBadRequest,
			Body:       map[string]any{"phone": []any{"already used"}, "detail": "Numéro déjà utilisé"},
		})

		rec := s.do(t, http.MethodPatch, "/phones/21", map[string]any{"phone": "0102030405", "country_code": "CI", "network_id": 3})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "Numéro déjà utilisé", decode[map[string]any](t, rec)["message"])
	})

	t.Run("should hide bonuses while the referral program is off", func(t *testing.T) {
		s := newTestServer(t)
		s.gw.On("GetSettings", mock.Anything).Return(&entity.Settings{ReferralBonus: false}, nil)

		rec := s.do(t, http.MethodGet, "/bonuses", nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, float64(errs.CodeBonusDisabled), decode[map[string]any](t, rec)["code"])
	})

	t.Run("should list transactions with paging", func(t *testing.T) {
		s := newTestServer(t)
		s.gw.On("ListTransactions", mock.Anything, entity.PageRequest{Page: 2, PageSize: 5}).
			Return(&entity.Page[entity.Transaction]{Count: 6, Results: []entity.Transaction{{ID: 6}}}, nil)

		rec := s.do(t, http.MethodGet, "/transactions?page=2&page_size=5", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(6), decode[map[string]any](t, rec)["count"])
	})
}
