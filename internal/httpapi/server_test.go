// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-analytics/internal/analytics"
	"github.com/pdiddy/research-analytics/internal/dataset"
	"github.com/pdiddy/research-analytics/internal/registry"
	"github.com/pdiddy/research-analytics/internal/suggest"
	"github.com/pdiddy/research-analytics/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer(t *testing.T) *Server {
	t.Helper()
	d, err := dataset.Load()
	require.NoError(t, err)
	cfg := types.DefaultConfig()
	cfg.Batch.MaxItems = 3
	return New(registry.NewDefault(analytics.New(d)), cfg.Server, cfg.Batch)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) registry.Envelope {
	t.Helper()
	var env registry.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	w := do(t, testServer(t), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","functions":6}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDEchoed(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestFunctions(t *testing.T) {
	s := testServer(t)

	w := do(t, s, http.MethodGet, "/api/functions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fns []registry.FunctionDescription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fns))
	require.Len(t, fns, 6)
	assert.Equal(t, registry.FnGetEntity, fns[0].Name)

	w = do(t, s, http.MethodGet, "/api/functions?format=openai", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tools []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	require.Len(t, tools, 6)
	assert.Equal(t, "function", tools[0]["type"])

	w = do(t, s, http.MethodGet, "/api/functions?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvokeStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   registry.ErrorCode
	}{
		{"success", `{"function":"getEntity","parameters":{"entityType":"author","entityId":"auth_001"}}`, http.StatusOK, ""},
		{"absent result", `{"function":"getEntity","parameters":{"entityType":"author","entityId":"auth_404"}}`, http.StatusOK, ""},
		{"unknown function", `{"function":"dropTables","parameters":{}}`, http.StatusNotFound, registry.CodeFunctionNotFound},
		{"invalid parameters", `{"function":"getEntity","parameters":{"entityType":"planet"}}`, http.StatusBadRequest, registry.CodeInvalidParameters},
		{"malformed json", `{"function":`, http.StatusBadRequest, registry.CodeInvalidParameters},
		{"missing function", `{"parameters":{}}`, http.StatusBadRequest, registry.CodeInvalidParameters},
	}
	s := testServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/invoke", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			env := decodeEnvelope(t, w)
			if tt.code == "" {
				assert.True(t, env.Success)
				return
			}
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestInvokeAbsentResultIsNull(t *testing.T) {
	w := do(t, testServer(t), http.MethodPost, "/api/invoke",
		`{"function":"getTrend","parameters":{"entityId":"inst_003","metric":"citations"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"function":"getTrend","result":null}`, w.Body.String())
}

func TestInvokeCompareOverHTTP(t *testing.T) {
	w := do(t, testServer(t), http.MethodPost, "/api/invoke",
		`{"function":"compareEntities","parameters":{"entityType":"author","entityIdA":"auth_002","entityIdB":"auth_001","metric":"citations"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result types.ComparisonResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 4089.0, body.Result.Difference)
	assert.InDelta(t, 84.78, body.Result.PercentDifference, 0.01)
}

func TestInvokeBatch(t *testing.T) {
	s := testServer(t)

	w := do(t, s, http.MethodPost, "/api/invoke/batch", `{"calls":[
		{"function":"getEntity","parameters":{"entityType":"author","entityId":"auth_001"}},
		{"function":"getEntity","parameters":{"entityType":"author"}}
	]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp registry.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Success)
	assert.False(t, resp.Results[1].Success)
	assert.Equal(t, registry.CodeInvalidParameters, resp.Results[1].Error.Code)
}

func TestInvokeBatchBadItemParameters(t *testing.T) {
	s := testServer(t)

	w := do(t, s, http.MethodPost, "/api/invoke/batch", `{"calls":[
		{"function":"getEntity","parameters":{"entityType":"author","entityId":"auth_001"}},
		{"function":"getEntity","parameters":"oops"}
	]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp registry.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Success)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, registry.CodeInvalidParameters, resp.Results[1].Error.Code)
	require.Len(t, resp.Results[1].Error.Fields, 1)
	assert.Equal(t, "parameters", resp.Results[1].Error.Fields[0].Path)
}

func TestInvokeBatchRejected(t *testing.T) {
	s := testServer(t)
	call := `{"function":"getEntity","parameters":{"entityType":"author","entityId":"auth_001"}}`

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"calls":`},
		{"empty", `{"calls":[]}`},
		{"missing calls", `{}`},
		{"too large", `{"calls":[` + strings.Repeat(call+",", 3) + call + `]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/invoke/batch", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestChat(t *testing.T) {
	s := testServer(t)

	w := do(t, s, http.MethodPost, "/api/chat", `{"message":"compare Chen and Anderson"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var reply suggest.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.Len(t, reply.Suggestions, 1)
	assert.Equal(t, registry.FnCompareEntities, reply.Suggestions[0].Function)

	w = do(t, s, http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)
	do(t, s, http.MethodPost, "/api/invoke", `{"function":"getEntity","parameters":{"entityType":"author","entityId":"auth_001"}}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "research_analytics_invocations_total")
}

func TestBodyLimit(t *testing.T) {
	s := testServer(t)
	big := `{"function":"getEntity","parameters":{"entityId":"` + strings.Repeat("x", maxBodyBytes) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/invoke", bytes.NewReader([]byte(big)))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := testServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/health")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
