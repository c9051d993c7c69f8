package pprofserver

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare-dispatch/internal/config"
	testlog "daycare-dispatch/internal/testutil"
)

func teapot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func debugRequest(remote, user, pass string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "http://example/debug/pprof/", nil)
	req.RemoteAddr = remote
	if user != "" || pass != "" {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(user+":"+pass)))
	}
	return req
}

func TestAuthOrLocalOnly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		cfg    config.Pprof
		remote string
		user   string
		pass   string
		want   int
	}{
		{"loopback without auth", config.Pprof{}, "127.0.0.1:12345", "", "", http.StatusTeapot},
		{"remote without configured creds", config.Pprof{}, "8.8.8.8:54444", "u", "p", http.StatusUnauthorized},
		{"remote wrong creds", config.Pprof{User: "u", Pass: "p"}, "8.8.8.8:54444", "u", "WRONG", http.StatusUnauthorized},
		{"remote no header", config.Pprof{User: "u", Pass: "p"}, "8.8.8.8:54444", "", "", http.StatusUnauthorized},
		{"remote correct creds", config.Pprof{User: "u", Pass: "p"}, "8.8.8.8:54444", "u", "p", http.StatusTeapot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := testlog.New()
			h := authOrLocalOnly(teapot(), tc.cfg, rec.Logger())
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, debugRequest(tc.remote, tc.user, tc.pass))

			require.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusUnauthorized {
				assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
				assert.Contains(t, rec.Messages(), "pprof access denied")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewServer(config.Pprof{}, nil))

	srv := NewServer(config.Pprof{Addr: "127.0.0.1:6060"}, nil)
	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:6060", srv.Addr)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
	req.RemoteAddr = "127.0.0.1:1"
	srv.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestIsLoopback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"127.0.0.1:123", true},
		{"127.0.0.1", true},
		{" 127.0.0.1 ", true},
		{"[::1]:123", true},
		{"8.8.8.8:1", false},
		{"not-an-ip:1", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isLoopback(tc.in), tc.in)
	}
}

func TestSecureEq(t *testing.T) {
	t.Parallel()

	assert.False(t, secureEq("a", "ab"))
	assert.True(t, secureEq("abc", "abc"))
	assert.False(t, secureEq("abc", "abd"))
}
