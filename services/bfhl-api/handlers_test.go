package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puresearch/bfhl-api/common/config"
	"puresearch/bfhl-api/common/logging"
	"puresearch/bfhl-api/common/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.MaxBodyBytes = 512
	return NewRouter(cfg, logging.Nop()), cfg
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleBFHL_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "mixed strings",
			body: `{"data": ["a","1","334","4","R","$"]}`,
			want: `{
				"is_success": true,
				"user_id": "john_doe_17091999",
				"email": "john@xyz.com",
				"roll_number": "ABCD123",
				"odd_numbers": ["1"],
				"even_numbers": ["334","4"],
				"alphabets": ["A","R"],
				"special_characters": ["$"],
				"sum": "339",
				"concat_string": "Ra"
			}`,
		},
		{
			name: "numeric types",
			body: `{"data": [1,2,3,4,5]}`,
			want: `{
				"is_success": true,
				"user_id": "john_doe_17091999",
				"email": "john@xyz.com",
				"roll_number": "ABCD123",
				"odd_numbers": ["1","3","5"],
				"even_numbers": ["2","4"],
				"alphabets": [],
				"special_characters": [],
				"sum": "15",
				"concat_string": ""
			}`,
		},
		{
			name: "empty array",
			body: `{"data": []}`,
			want: `{
				"is_success": true,
				"user_id": "john_doe_17091999",
				"email": "john@xyz.com",
				"roll_number": "ABCD123",
				"odd_numbers": [],
				"even_numbers": [],
				"alphabets": [],
				"special_characters": [],
				"sum": "0",
				"concat_string": ""
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/bfhl", tt.body)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestHandleBFHL_Failures(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "data is a string", body: `{"data": "x"}`, wantStatus: http.StatusBadRequest, wantError: msgDataNotArray},
		{name: "data is an object", body: `{"data": {"a": 1}}`, wantStatus: http.StatusBadRequest, wantError: msgDataNotArray},
		{name: "data is null", body: `{"data": null}`, wantStatus: http.StatusBadRequest, wantError: msgDataNotArray},
		{name: "data missing", body: `{"other": []}`, wantStatus: http.StatusBadRequest, wantError: msgDataNotArray},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantError: msgDataNotArray},
		{name: "top level array", body: `[1, 2]`, wantStatus: http.StatusBadRequest, wantError: msgDataNotArray},
		{name: "syntax error", body: `{"data": [1,,2]}`, wantStatus: http.StatusBadRequest, wantError: msgInvalidJSON},
		{name: "truncated body", body: `{"data": [1, 2`, wantStatus: http.StatusBadRequest, wantError: msgInvalidJSON},
		{
			name:       "body over limit",
			body:       `{"data": ["` + strings.Repeat("a", 1024) + `"]}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  msgTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/bfhl", tt.body)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["is_success"])
			assert.Equal(t, tt.wantError, resp["error"])
			assert.Equal(t, "john_doe_17091999", resp["user_id"])
			assert.Equal(t, "john@xyz.com", resp["email"])
			assert.Equal(t, "ABCD123", resp["roll_number"])

			for _, field := range []string{"odd_numbers", "even_numbers", "alphabets", "special_characters", "sum", "concat_string"} {
				assert.NotContains(t, resp, field)
			}
		})
	}
}

func TestHandleBFHL_IdentityFromConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig()
	cfg.FullName = "Ada Lovelace"
	cfg.DOB = "10-12-1815"
	cfg.Email = "ada@example.com"
	cfg.RollNumber = "AL1815"
	router := NewRouter(cfg, logging.Nop())

	w := do(router, http.MethodPost, "/bfhl", `{"data": ["x"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BFHLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "ada_lovelace_10121815", resp.UserID)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, "AL1815", resp.RollNumber)
	assert.Equal(t, []string{"X"}, resp.Alphabets)
}

func TestHandleInfo(t *testing.T) {
	router, cfg := newTestRouter(t)
	cfg.PublicBaseURL = "https://bfhl.example.com"

	w := do(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"ok": true,
		"message": "Welcome to the BFHL API",
		"endpoints": {"post_bfhl": "https://bfhl.example.com/bfhl"}
	}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","service":"bfhl-api"}`, w.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestPanicReturnsFailureEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := do(router, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{
		"is_success": false,
		"user_id": "john_doe_17091999",
		"email": "john@xyz.com",
		"roll_number": "ABCD123",
		"error": "Internal server error"
	}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/bfhl", `{"data": [2, 4, "a", "$", ""]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `bfhl_classified_tokens_total{bucket="even"} 2`)
	assert.Contains(t, body, `bfhl_classified_tokens_total{bucket="alphabet"} 1`)
	assert.Contains(t, body, `bfhl_classified_tokens_total{bucket="special"} 1`)
	assert.Contains(t, body, `bfhl_classified_tokens_total{bucket="dropped"} 1`)
	assert.Contains(t, body, `bfhl_api_requests_total{method="POST",path="/bfhl",status="200"} 1`)
}

func TestSwaggerDoc(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/bfhl")
	assert.Contains(t, paths, "/")
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/bfhl", nil)
	req.Header.Set("Origin", "https://client.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
