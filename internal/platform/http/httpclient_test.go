package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_UserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tests := []struct {
		name      string
		userAgent string
		header    string
		expected  string
	}{
		{"default user agent", "", "", DefaultUserAgent},
		{"custom user agent", "explorer-cli/1.0", "", "explorer-cli/1.0"},
		{"request header wins", "explorer-cli/1.0", "probe/0.1", "probe/0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHTTPClient(2*time.Second, tt.userAgent)

			req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("User-Agent", tt.header)
			}

			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.expected, got)
			if tt.header == "" {
				assert.Empty(t, req.Header.Get("User-Agent"), "caller request must not be mutated")
			}
		})
	}
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	client := NewHTTPClient(3*time.Second, "")

	assert.Equal(t, 3*time.Second, client.Timeout)
	_, ok := client.Transport.(*userAgentTransport)
	assert.True(t, ok)
}
