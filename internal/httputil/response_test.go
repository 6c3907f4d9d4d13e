package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		body   string
	}{
		{
			name:   "error",
			write:  func(w http.ResponseWriter) { RespondError(w, "Description is required", http.StatusBadRequest) },
			status: http.StatusBadRequest,
			body:   `{"error":"Description is required"}`,
		},
		{
			name:   "message",
			write:  func(w http.ResponseWriter) { RespondMessage(w, "No token provided.", http.StatusUnauthorized) },
			status: http.StatusUnauthorized,
			body:   `{"message":"No token provided."}`,
		},
		{
			name:   "internal",
			write:  func(w http.ResponseWriter) { RespondInternal(w, "Login failed.", "internal server error") },
			status: http.StatusInternalServerError,
			body:   `{"message":"Login failed.","error":"internal server error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a@x.com", dst.Email)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(r, &dst))
}
