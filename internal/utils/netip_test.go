package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "192.0.2.1:5000", nil, false, "192.0.2.1"},
		{"remote without port", "192.0.2.1", nil, false, "192.0.2.1"},
		{"headers ignored", "192.0.2.1:5000", map[string]string{"X-Forwarded-For": "10.0.0.1"}, false, "192.0.2.1"},
		{"cloudflare first", "127.0.0.1:1", map[string]string{"CF-Connecting-IP": "10.0.0.9", "X-Forwarded-For": "10.0.0.1"}, true, "10.0.0.9"},
		{"left-most forwarded", "127.0.0.1:1", map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, true, "10.0.0.1"},
		{"real ip", "127.0.0.1:1", map[string]string{"X-Real-IP": "[2001:db8::1]:443"}, true, "2001:db8::1"},
		{"no headers behind proxy", "127.0.0.1:1", nil, true, "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r, tt.trustProxy))
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m, err := ParseAllowList([]string{" 10.0.0.0/8", "", "192.0.2.7", "2001:db8::/32", "172.16.5.4/12"})
	require.NoError(t, err)
	assert.False(t, m.IsEmpty())

	assert.True(t, m.Allow("10.20.30.40"))
	assert.True(t, m.Allow("::ffff:10.1.1.1"))
	assert.True(t, m.Allow("192.0.2.7"))
	assert.False(t, m.Allow("192.0.2.8"))
	assert.True(t, m.Allow("2001:db8:1::5"))
	assert.True(t, m.Allow("172.31.0.1"))
	assert.False(t, m.Allow("not-an-ip"))
}

func TestParseAllowListReportsBadEntries(t *testing.T) {
	m, err := ParseAllowList([]string{"10.0.0.0/8", "bogus", "1.2.3.4/40"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogus"`)
	assert.Contains(t, err.Error(), `"1.2.3.4/40"`)
	assert.True(t, m.Allow("10.0.0.1"))

	assert.True(t, NewIPMatcher([]string{"bogus"}).IsEmpty())
}
