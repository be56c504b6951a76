package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePostURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"query dropped", "https://www.instagram.com/p/ABC123/?foo=bar", "https://www.instagram.com/p/ABC123/"},
		{"already canonical", "https://www.instagram.com/p/ABC123/", "https://www.instagram.com/p/ABC123/"},
		{"missing trailing slash", "https://instagram.com/p/ABC123", "https://www.instagram.com/p/ABC123/"},
		{"reel", "https://www.instagram.com/reel/XyZ_9/?igsh=abc", "https://www.instagram.com/reel/XyZ_9/"},
		{"bare shortcode", "https://www.instagram.com/ABC123", "https://www.instagram.com/p/ABC123/"},
		{"mobile host", "https://m.instagram.com/p/ABC123/#frag", "https://www.instagram.com/p/ABC123/"},
		{"other platform", "https://www.facebook.com/acme/posts/1?x=y", "https://www.facebook.com/acme/posts/1?x=y"},
		{"malformed", "http://[::1]:namedport", "http://[::1]:namedport"},
		{"no path", "https://www.instagram.com/", "https://www.instagram.com/"},
		{"p without code", "https://www.instagram.com/p/", "https://www.instagram.com/p/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePostURL(tc.in))
		})
	}
}

func TestNormalizePostURLIsIdempotent(t *testing.T) {
	once := NormalizePostURL("https://www.instagram.com/reel/C0de/?utm_source=ig")
	assert.Equal(t, once, NormalizePostURL(once))
}

func TestExtractUsername(t *testing.T) {
	name, err := ExtractUsername("https://www.instagram.com/acme/")
	require.NoError(t, err)
	assert.Equal(t, "acme", name)

	name, err = ExtractUsername("https://instagram.com/@acme.shop?hl=en")
	require.NoError(t, err)
	assert.Equal(t, "acme.shop", name)

	for _, bad := range []string{"https://www.instagram.com/", "https://www.instagram.com/p/ABC/", "acme", "http://[::1]:namedport"} {
		_, err = ExtractUsername(bad)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe, bad)
	}
}

func TestIsInstagramURL(t *testing.T) {
	assert.True(t, IsInstagramURL("https://www.instagram.com/acme/"))
	assert.False(t, IsInstagramURL("https://www.tiktok.com/@acme"))
}
