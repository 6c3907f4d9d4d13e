package threat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, []Threat) {
	t.Helper()

	repo, threats := newTestRepository(t)
	h := NewHandler(NewService(repo))

	r := chi.NewRouter()
	r.Get("/threats", h.List)
	r.Get("/threats/stats", h.Stats)
	r.Get("/threats/categories", h.Categories)
	r.Get("/threats/{id}", h.Get)
	return r, threats
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_List(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/threats?category=Malware&page=1&limit=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var page Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Threats, 2)
	assert.Equal(t, "Malware", page.Threats[0].ThreatCategory)

	rec = get(t, h, "/threats?search=Test%20threat%201")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Threats, 1)
	assert.Equal(t, "Test threat 1", page.Threats[0].CleanedThreatDescription)
}

func TestHandler_ListPaging(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		query      string
		page       int
		limit      int
		totalPages int
		count      int
	}{
		{"", 1, 10, 1, 3},
		{"?page=2&limit=2", 2, 2, 2, 1},
		{"?page=0&limit=0", 1, 10, 1, 3},
		{"?page=abc&limit=-4", 1, 10, 1, 3},
		{"?limit=1000", 1, 100, 1, 3},
	}

	for _, tc := range tests {
		rec := get(t, h, "/threats"+tc.query)
		require.Equal(t, http.StatusOK, rec.Code, tc.query)

		var page Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, tc.page, page.Page, tc.query)
		assert.Equal(t, tc.limit, page.Limit, tc.query)
		assert.Equal(t, tc.totalPages, page.TotalPages, tc.query)
		assert.Len(t, page.Threats, tc.count, tc.query)
	}
}

func TestHandler_ListEmptyIsArray(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/threats?category=None")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"threats":[]`)
}

func TestHandler_Get(t *testing.T) {
	h, threats := newTestRouter(t)

	rec := get(t, h, "/threats/"+strconv.FormatInt(threats[0].ID, 10))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, threats[0].ID, body["id"])
	assert.Equal(t, "Malware", body["Threat_Category"])

	rec = get(t, h, "/threats/99999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Threat not found"}`, rec.Body.String())

	for _, id := range []string{"abc", "0", "-1", "1.5"} {
		rec = get(t, h, "/threats/"+id)
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
		assert.JSONEq(t, `{"error":"Invalid threat ID"}`, rec.Body.String(), id)
	}
}

func TestHandler_Stats(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/threats/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"total": 3,
		"byCategory": [
			{"Threat_Category": "Malware", "_count": {"_all": 2}},
			{"Threat_Category": "Phishing", "_count": {"_all": 1}}
		],
		"bySeverity": [
			{"Severity_Score": 6, "_count": {"_all": 1}},
			{"Severity_Score": 8, "_count": {"_all": 2}}
		]
	}`, rec.Body.String())
}

func TestHandler_Categories(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/threats/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Malware","Phishing"]`, rec.Body.String())
}
