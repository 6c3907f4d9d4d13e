package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/threatlens/threatlens-api/internal/analysis"
	"github.com/threatlens/threatlens-api/internal/auth"
	"github.com/threatlens/threatlens-api/internal/broadcast"
	"github.com/threatlens/threatlens-api/internal/config"
	"github.com/threatlens/threatlens-api/internal/database"
	"github.com/threatlens/threatlens-api/internal/logging"
	"github.com/threatlens/threatlens-api/internal/threat"
	"github.com/threatlens/threatlens-api/internal/user"
)

const trustedOrigin = "http://localhost:5173"

type testAPI struct {
	server *httptest.Server
	hub    *broadcast.Hub
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	logger := logging.NewNopLogger()

	cfg := &config.Config{
		Server: config.ServerConfig{Env: "test", TrustedOrigins: []string{trustedOrigin}},
	}

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	tokens, err := auth.NewJWTService([]byte("router-secret"), "")
	require.NoError(t, err)
	hasher, err := auth.NewPasswordHasher(config.HasherBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	authService, err := auth.NewService(user.NewRepository(db), tokens, hasher, logger, time.Hour)
	require.NoError(t, err)
	authMiddleware := auth.NewMiddleware(tokens)

	hub := broadcast.NewHub(logger, 8, nil)
	predictor := analysis.PredictorFunc(func(_ context.Context, description string) (string, error) {
		if strings.Contains(description, "email") {
			return "Phishing", nil
		}
		return "Malware", nil
	})
	analysisService := analysis.NewService(analysis.NewPooledPredictor(predictor, 2, time.Second), hub, logger)

	threatRepo := threat.NewRepository(db)
	require.NoError(t, threatRepo.CreateMany(ctx, []threat.Threat{
		{ThreatCategory: "Malware", SeverityScore: 8, CleanedThreatDescription: "Test threat 1"},
		{ThreatCategory: "Phishing", SeverityScore: 6, CleanedThreatDescription: "Test threat 2"},
	}))

	router := NewRouter(cfg, Handlers{
		Auth:      auth.NewHandler(authService),
		Threats:   threat.NewHandler(threat.NewService(threatRepo)),
		Analysis:  analysis.NewHandler(analysisService),
		Subscribe: hub,
	}, authMiddleware, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return &testAPI{server: srv, hub: hub}
}

func (a *testAPI) do(t *testing.T, method, path, token, payload string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, a.server.URL+path, strings.NewReader(payload))
	require.NoError(t, err)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()

	creds := `{"email":"` + email + `","password":"` + password + `"}`
	resp, _ := a.do(t, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := a.do(t, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tok auth.TokenResponse
	require.NoError(t, json.Unmarshal(body, &tok))
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

func TestRouter_RegisterLoginAnalyzeFlow(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodPost, "/api/auth/register", "", `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User registered successfully."}`, string(body))

	resp, body = api.do(t, http.MethodPost, "/api/auth/register", "", `{"email":"a@x.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User already exists."}`, string(body))

	resp, body = api.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok auth.TokenResponse
	require.NoError(t, json.Unmarshal(body, &tok))

	wsURL := "ws" + strings.TrimPrefix(api.server.URL, "http") + "/ws"
	conn, wsResp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	_ = wsResp.Body.Close()
	defer conn.Close()
	require.Eventually(t, func() bool { return api.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, body = api.do(t, http.MethodPost, "/api/threats/analyze", tok.Token, `{"description":"Suspicious email with link"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"predicted_category":"Phishing"}`, string(body))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Event string                 `json:"event"`
		Data  analysis.AnalysisEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frame, &event))
	assert.Equal(t, broadcast.EventAnalysis, event.Event)
	assert.Equal(t, "Suspicious email with link", event.Data.Description)
	assert.Equal(t, "Phishing", event.Data.PredictedCategory)
	_, err = time.Parse(time.RFC3339, event.Data.Timestamp)
	assert.NoError(t, err)
}

func TestRouter_AccessGate(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "gate@x.com", "pw123456")

	resp, body := api.do(t, http.MethodGet, "/api/threats", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"No token provided."}`, string(body))

	resp, body = api.do(t, http.MethodGet, "/api/threats", "invalid-token", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Invalid token."}`, string(body))

	resp, _ = api.do(t, http.MethodPost, "/api/threats/analyze", "", `{"description":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	for _, path := range []string{"/api/threats", "/api/threats/stats", "/api/threats/categories", "/api/auth/me"} {
		resp, _ = api.do(t, http.MethodGet, path, token, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, body = api.do(t, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"email":"gate@x.com"`)
}

func TestRouter_LoginFailuresMatch(t *testing.T) {
	api := newTestAPI(t)
	_ = api.login(t, "a@x.com", "pw123456")

	wrongResp, wrongBody := api.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"a@x.com","password":"nope"}`)
	unknownResp, unknownBody := api.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"b@x.com","password":"pw123456"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongResp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownResp.StatusCode)
	assert.Equal(t, string(wrongBody), string(unknownBody))
}

func TestRouter_AnalyzeWithoutDescription(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "a@x.com", "pw123456")

	resp, body := api.do(t, http.MethodPost, "/api/threats/analyze", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Description is required"}`, string(body))
}

func TestRouter_HealthAndHeaders(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"api is running"}`, string(body))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("Strict-Transport-Security"))

	resp, _ = api.do(t, http.MethodGet, "/swagger/index.html", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CORSPreflight(t *testing.T) {
	api := newTestAPI(t)

	req, err := http.NewRequest(http.MethodOptions, api.server.URL+"/api/auth/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", trustedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := api.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, trustedOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
}
