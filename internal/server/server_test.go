package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/veldt-labs/cashlens/internal/modules/auth"
	authhandlers "github.com/veldt-labs/cashlens/internal/modules/auth/handlers"
	"github.com/veldt-labs/cashlens/internal/modules/dashboard"
	dashboardhandlers "github.com/veldt-labs/cashlens/internal/modules/dashboard/handlers"
	"github.com/veldt-labs/cashlens/internal/modules/records"
	recordshandlers "github.com/veldt-labs/cashlens/internal/modules/records/handlers"
	simulationhandlers "github.com/veldt-labs/cashlens/internal/modules/simulation/handlers"
	"github.com/veldt-labs/cashlens/internal/modules/transactions"
	transactionshandlers "github.com/veldt-labs/cashlens/internal/modules/transactions/handlers"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	financeDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { financeDB.Close() })

	_, err = financeDB.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			company_name TEXT NOT NULL,
			industry_category TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE financial_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tenant_id TEXT NOT NULL,
			period_date TEXT NOT NULL,
			revenue_cents INTEGER NOT NULL DEFAULT 0,
			cogs_cents INTEGER NOT NULL DEFAULT 0,
			opex_cents INTEGER NOT NULL DEFAULT 0,
			cash_on_hand_cents INTEGER NOT NULL DEFAULT 0,
			liabilities_cents INTEGER NOT NULL DEFAULT 0,
			runway_months REAL NOT NULL DEFAULT 0,
			risk_score INTEGER NOT NULL DEFAULT 0,
			collapse_probability REAL NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			UNIQUE (tenant_id, period_date)
		);
		CREATE TABLE daily_transactions (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			date TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	cacheDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { cacheDB.Close() })

	_, err = cacheDB.Exec(`
		CREATE TABLE dashboard_cache (
			tenant_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	log := zerolog.Nop()
	userRepo := auth.NewRepository(financeDB, log)
	recordRepo := records.NewRepository(financeDB, log)
	transactionRepo := transactions.NewRepository(financeDB, log)

	authService := auth.NewService(userRepo, "test-secret", time.Hour, log)
	recordService := records.NewService(recordRepo, log)
	transactionService := transactions.NewService(transactionRepo, log)
	dashboardCache := dashboard.NewCache(cacheDB, time.Minute, log)
	dashboardService := dashboard.NewService(recordRepo, userRepo, dashboardCache, log)

	srv := New(Config{
		Log:                 log,
		Port:                0,
		DevMode:             true,
		AuthService:         authService,
		AuthHandler:         authhandlers.NewHandler(authService, log),
		RecordsHandler:      recordshandlers.NewHandler(recordService, dashboardService, log),
		TransactionsHandler: transactionshandlers.NewHandler(transactionService, log),
		DashboardHandler:    dashboardhandlers.NewHandler(dashboardService, log),
		SimulationHandler:   simulationhandlers.NewHandler(recordRepo, log),
	})

	return srv.Router()
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var decoded map[string]interface{}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr, decoded
}

func registerTenant(t *testing.T, handler http.Handler) string {
	t.Helper()

	rr, body := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":            "founder@acme.test",
		"password":         "correct-horse",
		"companyName":      "Acme Widgets",
		"industryCategory": "SaaS",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rr, body := doJSON(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "cashlens", body["service"])
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	handler := newTestServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/dashboard"},
		{http.MethodPost, "/api/financial-records"},
		{http.MethodGet, "/api/daily"},
		{http.MethodPost, "/api/simulate"},
	} {
		rr, _ := doJSON(t, handler, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func TestIngestThenDashboardFlow(t *testing.T) {
	handler := newTestServer(t)
	token := registerTenant(t, handler)

	// Dashboard before any data
	rr, _ := doJSON(t, handler, http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Ingest one snapshot
	rr, body := doJSON(t, handler, http.MethodPost, "/api/financial-records", token, map[string]interface{}{
		"periodDate":  "2026-01-01",
		"revenue":     10000.0,
		"cogs":        3000.0,
		"opex":        9000.0,
		"cashOnHand":  20000.0,
		"liabilities": 5000.0,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, body, "record")
	assert.Contains(t, body, "forecasts")

	// Dashboard now composes
	rr, body = doJSON(t, handler, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Acme Widgets", body["companyName"])
	assert.Equal(t, "SaaS", body["industry"])
	assert.Contains(t, body, "calculatedMetrics")
	assert.Contains(t, body, "loanReadiness")
	assert.Contains(t, body, "advisorInsights")
	assert.Contains(t, body, "benchmark")

	// Simulation against the stored baseline
	rr, body = doJSON(t, handler, http.MethodPost, "/api/simulate", token, map[string]interface{}{
		"revenueChangePercent": 10.0,
		"expenseChangePercent": -5.0,
		"loanInjectionDollars": 1000.0,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, body, "calculatedMetrics")
	assert.Contains(t, body, "forecasts")

	// Reset wipes everything
	rr, body = doJSON(t, handler, http.MethodDelete, "/api/financial-records/reset", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), body["deleted"])

	rr, _ = doJSON(t, handler, http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDailyLedgerFlow(t *testing.T) {
	handler := newTestServer(t)
	token := registerTenant(t, handler)

	rr, body := doJSON(t, handler, http.MethodPost, "/api/daily/bulk", token, map[string]interface{}{
		"transactions": []map[string]interface{}{
			{"date": "2026-01-01", "description": "Invoice 42", "category": "Income", "amount": 1500.0},
			{"date": "2026-01-01", "description": "Hosting", "category": "Fixed", "amount": 50.0},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, float64(2), body["inserted"])

	rr, body = doJSON(t, handler, http.MethodGet, "/api/daily", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	txs, ok := body["transactions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, txs, 2)
	assert.Contains(t, body, "analytics")

	// Delete one by id
	first, ok := txs[0].(map[string]interface{})
	require.True(t, ok)
	id, _ := first["id"].(string)
	require.NotEmpty(t, id)

	rr, _ = doJSON(t, handler, http.MethodDelete, "/api/daily/"+id, token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doJSON(t, handler, http.MethodDelete, "/api/daily/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSimulateWithoutRecords(t *testing.T) {
	handler := newTestServer(t)
	token := registerTenant(t, handler)

	rr, _ := doJSON(t, handler, http.MethodPost, "/api/simulate", token, map[string]interface{}{
		"revenueChangePercent": 10.0,
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
