package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only spaces", "   \n\t ", ""},
		{"collapses runs", "  Senior\n\n  Go   Engineer ", "Senior Go Engineer"},
		{"nbsp", "Acme\u00a0Corp", "Acme Corp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CleanText(got), "cleaning must be idempotent")
		})
	}
}

func TestCleanAny(t *testing.T) {
	assert.Equal(t, "Go Dev", CleanAny(" Go \n Dev "))
	assert.Equal(t, "42", CleanAny(float64(42)))
	assert.Equal(t, "", CleanAny(nil))
	assert.Equal(t, "", CleanAny(map[string]any{"name": "x"}))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips utm and fragment", "https://x.test/j?utm_source=a&id=1#frag", "https://x.test/j?id=1"},
		{"strips every tracking param", "https://x.test/j?utm_medium=m&utm_campaign=c&utm_term=t&utm_content=x&gh_jid=9", "https://x.test/j"},
		{"keeps order of other params", "https://x.test/j?b=2&utm_source=a&a=1", "https://x.test/j?b=2&a=1"},
		{"trims", "  https://x.test/j  ", "https://x.test/j"},
		{"adds root path", "https://X.test", "https://x.test/"},
		{"drops https default port", "https://x.test:443/j?id=1", "https://x.test/j?id=1"},
		{"drops http default port", "http://x.test:80", "http://x.test/"},
		{"keeps other ports", "https://x.test:8443/j", "https://x.test:8443/j"},
		{"keeps port of the other scheme", "http://x.test:443/j", "http://x.test:443/j"},
		{"relative falls back", " /jobs/1?utm_source=a ", "/jobs/1?utm_source=a"},
		{"garbage falls back", "not a url", "not a url"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeURL(got), "normalization must be idempotent")
		})
	}
}

func TestHostnameAndIsWebURL(t *testing.T) {
	assert.Equal(t, "boards.greenhouse.io", Hostname("https://Boards.Greenhouse.io:443/acme"))
	assert.Equal(t, "", Hostname("::bad"))
	assert.True(t, IsWebURL("https://x.test/a"))
	assert.True(t, IsWebURL("http://x.test"))
	assert.False(t, IsWebURL("chrome://extensions"))
	assert.False(t, IsWebURL("file:///tmp/a.html"))
}

func TestHostLimiter(t *testing.T) {
	var nilLimiter *HostLimiter
	require.NoError(t, nilLimiter.WaitURL(context.Background(), "https://x.test"))

	hl := NewHostLimiter(0, 0)
	for i := 0; i < 5; i++ {
		require.NoError(t, hl.WaitURL(context.Background(), "https://x.test/a"))
	}

	slow := NewHostLimiter(0.001, 1)
	require.NoError(t, slow.WaitURL(context.Background(), "https://y.test/a"))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, slow.WaitURL(ctx, "https://y.test/b"))
	assert.NoError(t, slow.WaitURL(ctx, "https://z.test/b"), "other hosts have their own bucket")
}
