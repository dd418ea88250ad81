package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veristat/internal/config"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestClientComplete(t *testing.T) {
	srv := chatServer(t, `{"ok": true}`)
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second, nil)
	got, err := c.Complete(context.Background(), "gpt-4o-mini", 0, "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, got)
}

func TestClientCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second, nil)
	_, err := c.Complete(context.Background(), "gpt-4o-mini", 0, "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second, nil)
	_, err := c.Complete(context.Background(), "gpt-4o-mini", 0, "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestCleanPayload(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `[{"a": 1}]`, `[{"a": 1}]`},
		{"json fence", "```json\n[{\"a\": 1}]\n```", `[{"a": 1}]`},
		{"python fence", "```python\ntests = [{\"a\": 1}]\n```", `[{"a": 1}]`},
		{"assignment prefix", `tests = [{"a": 1}]`, `[{"a": 1}]`},
		{"whitespace", "\n  [] \n", "[]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanPayload(tc.in))
		})
	}
}

func TestExtractorTestClaims(t *testing.T) {
	payload := "```json\n[" +
		`{"test_type": "t", "df1": 20, "test_value": 2.10, "operator": "=", "reported_p_value": 0.0487, "tail": "two"},` +
		`{"test_type": "b", "test_value": 1.0}` +
		"]\n```"
	srv := chatServer(t, payload)
	defer srv.Close()

	cfg := config.Config{
		GRIM:      config.ToolConfig{Model: "gpt-4o", Temperature: 0.01},
		Statcheck: config.ToolConfig{Model: "gpt-4o-mini"},
	}
	ext := NewExtractor(NewClient("test-key", srv.URL, time.Second, nil), cfg)

	claims, skips, err := ext.ExtractTestClaims(context.Background(), "t(20) = 2.10, p = .0487")
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "2.10", claims[0].ValueLiteral)
	assert.Len(t, skips, 1)
}

func TestExtractorMeanClaims(t *testing.T) {
	payload := `[{"reported_mean": "6.60", "sample_size": 28, "discrete_reasoning": "mean of 7-point scale, N = 28 in same sentence"}]`
	srv := chatServer(t, payload)
	defer srv.Close()

	cfg := config.Config{
		GRIM:      config.ToolConfig{Model: "gpt-4o", Temperature: 0.01},
		Statcheck: config.ToolConfig{Model: "gpt-4o-mini"},
	}
	ext := NewExtractor(NewClient("test-key", srv.URL, time.Second, nil), cfg)

	claims, skips, err := ext.ExtractMeanClaims(context.Background(), "M = 6.60 (N = 28)")
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Empty(t, skips)
	assert.Equal(t, "6.60", claims[0].MeanLiteral)
	assert.Equal(t, 28, claims[0].SampleSize)
}
