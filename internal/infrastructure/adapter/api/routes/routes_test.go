package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/admin"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/exchange"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/redemption"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/requestid"
	"github.com/amirhossein-jamali/credit-exchange/internal/testutil/ledgertest"
)

const signingKey = "routes-test-signing-key-0123456789"

type harness struct {
	env    *ledgertest.Env
	router *gin.Engine
	tokens *auth.TokenManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := ledgertest.New(t)
	tokens, err := auth.NewTokenManager(signingKey, "credit-exchange", time.Hour, env.Clock)
	require.NoError(t, err)

	accounts := account.NewAccountUseCase(env.Runner, env.Reports, env.Cache, account.Config{}, env.Clock, env.Logger)
	adminService := admin.NewAdminService(env.Runner, env.Reports, env.Cache, admin.Config{}, nil, env.Clock, env.Logger)
	exchangeService := exchange.NewExchangeService(env.Runner, exchange.Config{}, env.Clock, env.Logger, env.Metrics)
	redemptionService := redemption.NewRedemptionService(env.Runner, env.Clock, env.Logger, env.Metrics)

	reg := prometheus.NewRegistry()
	router := gin.New()
	SetupMiddlewares(router, MiddlewareConfig{
		AllowedOrigins: []string{"*"},
		Observer:       metrics.NewHTTPMetrics(reg),
	}, env.Logger, env.Clock)
	SetupRoutes(router, Handlers{
		Ledger:      handler.NewLedgerHandler(exchangeService, redemptionService, accounts, env.Logger),
		Admin:       handler.NewAdminHandler(adminService, 1<<20, env.Logger),
		Health:      handler.NewHealthHandler(nil, env.Logger),
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		MetricsPath: "/metrics",
	}, tokens)

	return &harness{env: env, router: router, tokens: tokens}
}

func (h *harness) token(t *testing.T, a *entity.Account) string {
	t.Helper()
	token, _, err := h.tokens.Issue(entity.Principal{AccountID: a.ID, Role: a.Role, IsActive: a.IsActive})
	require.NoError(t, err)
	return token
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) upload(t *testing.T, token string, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "tokens.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/inventory", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func exchangeBody(n int) dto.ExchangeRequest {
	return dto.ExchangeRequest{TokenCount: &n}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status, code int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, code, body.Code)
	assert.NotEmpty(t, body.Kind)
	assert.NotEmpty(t, body.Message)
}

func TestExchangeEndpoint(t *testing.T) {
	h := newHarness(t)
	alice := h.env.CreateAccount(t, "alice", 120)
	h.env.AddInventory(t, "TOKEN-A", "TOKEN-B", "TOKEN-C")

	rec := h.do(t, http.MethodPost, "/api/v1/exchange", h.token(t, alice), exchangeBody(2))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[dto.ExchangeResponse](t, rec)
	assert.Equal(t, []string{"TOKEN-A", "TOKEN-B"}, body.TokenValues)
	assert.EqualValues(t, 100, body.Cost)
	assert.EqualValues(t, 20, body.NewBalance)

	t.Run("EmptyBodyExchangesOne", func(t *testing.T) {
		bob := h.env.CreateAccount(t, "bob", 50)
		rec := h.do(t, http.MethodPost, "/api/v1/exchange", h.token(t, bob), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []string{"TOKEN-C"}, decode[dto.ExchangeResponse](t, rec).TokenValues)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		rec := h.do(t, http.MethodPost, "/api/v1/exchange", h.token(t, alice), exchangeBody(1))
		requireError(t, rec, http.StatusBadRequest, errs.CodeInsufficientBalance)
	})

	t.Run("InventoryExhausted", func(t *testing.T) {
		rich := h.env.CreateAccount(t, "rich", 1000)
		rec := h.do(t, http.MethodPost, "/api/v1/exchange", h.token(t, rich), exchangeBody(1))
		requireError(t, rec, http.StatusBadRequest, errs.CodeInventoryExhausted)
		assert.EqualValues(t, 1000, h.env.Account(t, rich.ID).RequestBalance())
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		rec := h.do(t, http.MethodPost, "/api/v1/exchange", h.token(t, alice), exchangeBody(-1))
		requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidAmount)
	})

	t.Run("ExplicitZeroIsRejected", func(t *testing.T) {
		rich := h.env.CreateAccount(t, "zero", 1000)
		rec := h.do(t, http.MethodPost, "/api/v1/exchange", h.token(t, rich), map[string]int{"tokenCount": 0})
		requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidAmount)
		assert.EqualValues(t, 1000, h.env.Account(t, rich.ID).RequestBalance())
	})

	h.env.RequireLedgerBalanced(t)
}

func TestAuthenticationGuards(t *testing.T) {
	h := newHarness(t)
	alice := h.env.CreateAccount(t, "alice", 100)

	t.Run("MissingToken", func(t *testing.T) {
		rec := h.do(t, http.MethodPost, "/api/v1/exchange", "", nil)
		requireError(t, rec, http.StatusUnauthorized, errs.CodeUnauthorized)
	})

	t.Run("MalformedToken", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/v1/me/dashboard", "garbage", nil)
		requireError(t, rec, http.StatusUnauthorized, errs.CodeUnauthorized)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token := h.token(t, alice)
		h.env.Clock.Advance(2 * coreport.Hour)
		rec := h.do(t, http.MethodGet, "/api/v1/me/dashboard", token, nil)
		requireError(t, rec, http.StatusUnauthorized, errs.CodeUnauthorized)
	})

	t.Run("InactivePrincipal", func(t *testing.T) {
		inactive := *alice
		inactive.IsActive = false
		token := h.token(t, &inactive)

		rec := h.do(t, http.MethodPost, "/api/v1/exchange", token, nil)
		requireError(t, rec, http.StatusForbidden, errs.CodeAccountInactive)

		rec = h.do(t, http.MethodPost, "/api/v1/keys/redeem", token, dto.RedeemRequest{KeyValue: "VIP-AAAAAA-BBBBBB"})
		requireError(t, rec, http.StatusForbidden, errs.CodeAccountInactive)

		rec = h.do(t, http.MethodGet, "/api/v1/me/dashboard", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "the dashboard stays readable")
	})

	t.Run("NonAdmin", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/v1/admin/stats", h.token(t, alice), nil)
		requireError(t, rec, http.StatusForbidden, errs.CodeAdminRequired)
	})
}

func TestRedeemEndpoint(t *testing.T) {
	h := newHarness(t)
	alice := h.env.CreateAccount(t, "alice", 10)
	past := h.env.Clock.Now().Add(-time.Hour)
	h.env.AddKey(t, &entity.RedeemableKey{Value: "VIP-ABC123-DEF456", CreditAmount: 100, Description: "welcome"})
	h.env.AddKey(t, &entity.RedeemableKey{Value: "VIP-OLD000-KEY000", CreditAmount: 100, ExpiresAt: &past})
	token := h.token(t, alice)

	rec := h.do(t, http.MethodPost, "/api/v1/keys/redeem", token, dto.RedeemRequest{KeyValue: "  VIP-ABC123-DEF456 "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[dto.RedeemResponse](t, rec)
	assert.EqualValues(t, 100, body.CreditAmount)
	assert.EqualValues(t, 110, body.NewBalance)

	testCases := []struct {
		name   string
		key    string
		status int
		code   int
	}{
		{"AlreadyUsed", "VIP-ABC123-DEF456", http.StatusBadRequest, errs.CodeKeyAlreadyUsed},
		{"Expired", "VIP-OLD000-KEY000", http.StatusBadRequest, errs.CodeKeyExpired},
		{"Unknown", "VIP-ZZZZZZ-ZZZZZZ", http.StatusNotFound, errs.CodeKeyNotFound},
		{"Malformed", "vip-abc", http.StatusBadRequest, errs.CodeInvalidKeyFormat},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.do(t, http.MethodPost, "/api/v1/keys/redeem", token, dto.RedeemRequest{KeyValue: tc.key})
			requireError(t, rec, tc.status, tc.code)
		})
	}

	assert.True(t, h.env.Key(t, "VIP-OLD000-KEY000").IsExpiredFlag, "lazy expiry is persisted")
	assert.EqualValues(t, 110, h.env.Account(t, alice.ID).RequestBalance())
	h.env.RequireLedgerBalanced(t)
}

func TestDashboardAndDailyCode(t *testing.T) {
	h := newHarness(t)
	root := h.env.CreateAdmin(t, "root")
	alice := h.env.CreateAccount(t, "alice", 100)
	h.env.AddInventory(t, "TOKEN-A")

	rec := h.do(t, http.MethodGet, "/api/v1/daily-code", h.token(t, alice), nil)
	requireError(t, rec, http.StatusNotFound, errs.CodeDailyCodeNotSet)

	rec = h.do(t, http.MethodPut, "/api/v1/admin/daily-code", h.token(t, root), dto.DailyCodeRequest{Code: " sunrise "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/v1/daily-code", h.token(t, alice), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "sunrise", decode[dto.DailyCodeResponse](t, rec).Code)

	rec = h.do(t, http.MethodPost, "/api/v1/exchange", h.token(t, alice), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/v1/me/dashboard", h.token(t, alice), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dashboard := decode[dto.DashboardResponse](t, rec)
	assert.EqualValues(t, 50, dashboard.Account.RequestBalance)
	assert.Equal(t, string(entity.ExpiryStateNone), dashboard.Account.ExpiryState)
	assert.EqualValues(t, 100, dashboard.Totals.TotalEarned)
	assert.EqualValues(t, -50, dashboard.Totals.TotalSpent)
	require.Len(t, dashboard.ClaimedTokens, 1)
	assert.Equal(t, "TOKEN-A", dashboard.ClaimedTokens[0].TokenValue)

	t.Run("ExpiredAccountDenied", func(t *testing.T) {
		past := h.env.Clock.Now().Add(-time.Minute)
		h.env.SetExpiry(t, alice.ID, &past, false)
		rec := h.do(t, http.MethodGet, "/api/v1/daily-code", h.token(t, alice), nil)
		requireError(t, rec, http.StatusForbidden, errs.CodeAccountExpired)
	})
}

func TestAdminAccountEndpoints(t *testing.T) {
	h := newHarness(t)
	root := h.env.CreateAdmin(t, "root")
	alice := h.env.CreateAccount(t, "alice", 100)
	h.env.CreateAccount(t, "bob", 0)
	token := h.token(t, root)
	aliceURL := "/api/v1/admin/accounts/" + strconv.FormatUint(alice.ID, 10)

	rec := h.do(t, http.MethodPost, aliceURL+"/balance", token, dto.AdjustBalanceRequest{Delta: -150, Reason: "chargeback"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, -50, decode[dto.AdjustBalanceResponse](t, rec).NewBalance, "admin adjustments have no floor")

	rec = h.do(t, http.MethodPost, aliceURL+"/balance", token, dto.AdjustBalanceRequest{})
	requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidAmount)

	rec = h.do(t, http.MethodPost, aliceURL+"/expiry", token, dto.AdjustExpiryRequest{DeltaDays: 7})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[dto.AdjustExpiryResponse](t, rec).NewExpiryTime.Equal(h.env.Clock.Now().Add(7*24*time.Hour)))

	rec = h.do(t, http.MethodPatch, aliceURL+"/status", token, map[string]bool{"isActive": false})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.False(t, h.env.Account(t, alice.ID).IsActive)

	rec = h.do(t, http.MethodPatch, aliceURL+"/status", token, map[string]string{})
	requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidInput)

	rec = h.do(t, http.MethodGet, aliceURL, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	details := decode[dto.AccountDetailsResponse](t, rec)
	assert.Equal(t, "alice", details.Account.Username)
	assert.Equal(t, string(entity.ExpiryStateActive), details.Account.ExpiryState)
	assert.Len(t, details.RecentTransactions, 4)

	rec = h.do(t, http.MethodGet, "/api/v1/admin/accounts/999", token, nil)
	requireError(t, rec, http.StatusNotFound, errs.CodeAccountNotFound)

	rec = h.do(t, http.MethodGet, "/api/v1/admin/accounts/abc", token, nil)
	requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidInput)

	rec = h.do(t, http.MethodGet, "/api/v1/admin/accounts?q=ALI", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	found := decode[dto.AccountListResponse](t, rec).Accounts
	require.Len(t, found, 1)
	assert.Equal(t, alice.ID, found[0].ID)

	rec = h.do(t, http.MethodGet, "/api/v1/admin/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[dto.StatsResponse](t, rec)
	assert.EqualValues(t, 3, stats.Accounts)
	assert.EqualValues(t, -50, stats.TotalBalance)

	h.env.RequireLedgerBalanced(t)
}

func TestAdminMintKey(t *testing.T) {
	h := newHarness(t)
	root := h.env.CreateAdmin(t, "root")
	token := h.token(t, root)

	rec := h.do(t, http.MethodPost, "/api/v1/admin/keys", token, dto.MintKeyRequest{CreditAmount: 500, DurationDays: 30, Description: "promo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	key := decode[dto.MintKeyResponse](t, rec).Key
	assert.Regexp(t, regexp.MustCompile(`^VIP-[A-Z0-9]{6}-[A-Z0-9]{6}$`), key.KeyValue)
	assert.Equal(t, string(entity.KeyTypeRegular), key.KeyType)
	require.NotNil(t, key.ExpiresAt)

	rec = h.do(t, http.MethodPost, "/api/v1/admin/keys", token, dto.MintKeyRequest{CreditAmount: 10, CustomValue: "vip-custom-000001"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "VIP-CUSTOM-000001", decode[dto.MintKeyResponse](t, rec).Key.KeyValue)

	rec = h.do(t, http.MethodPost, "/api/v1/admin/keys", token, dto.MintKeyRequest{CreditAmount: 10, CustomValue: "VIP-CUSTOM-000001"})
	requireError(t, rec, http.StatusConflict, errs.CodeDuplicateValue)

	rec = h.do(t, http.MethodPost, "/api/v1/admin/keys", token, dto.MintKeyRequest{CreditAmount: 0})
	requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidAmount)
}

func TestAdminIngestInventory(t *testing.T) {
	h := newHarness(t)
	root := h.env.CreateAdmin(t, "root")
	token := h.token(t, root)

	rec := h.upload(t, token, "TOK-A\r\n\r\n  TOK-B  \nTOK-A\n", map[string]string{"expiresInDays": "3"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, decode[dto.IngestResponse](t, rec).InsertedCount)

	rec = h.do(t, http.MethodGet, "/api/v1/admin/stats", token, nil)
	assert.EqualValues(t, 2, decode[dto.StatsResponse](t, rec).AvailableTokens, "duplicates are skipped")

	rec = h.upload(t, token, "\n \r\n", nil)
	requireError(t, rec, http.StatusBadRequest, errs.CodeEmptyUpload)

	rec = h.upload(t, token, "TOK-C", map[string]string{"expiresInDays": "soon"})
	requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidAmount)

	t.Run("OversizedUpload", func(t *testing.T) {
		rec := h.upload(t, token, strings.Repeat("TOKEN-OVERSIZED\n", (2<<20)/16), nil)
		requireError(t, rec, http.StatusBadRequest, errs.CodeInvalidInput)
		assert.Contains(t, decode[dto.ErrorResponse](t, rec).Message, "upload too large")
	})
}

func TestOperationalEndpoints(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, rec).Status)
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestid.Header, "trace-123")
	rec = httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(requestid.Header))

	rec = h.do(t, http.MethodGet, "/nope", "", nil)
	requireError(t, rec, http.StatusNotFound, errs.CodeNotFound)

	rec = h.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `credit_exchange_http_requests_total{method="GET",route="/health",status="200"} 2`)
}
