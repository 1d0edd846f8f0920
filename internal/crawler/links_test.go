package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoqueryLinkExtractor(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/news">News</a>
		<a name="anchor">no href</a>
		<div><a href="https://partner.org/x">Partner</a></div>
		<a href="">empty</a>
		<link href="/style.css">
		<A HREF="//cdn.example.com/">upper</A>
	</body></html>`

	links, err := GoqueryLinkExtractor{}.Links([]byte(html))
	require.NoError(t, err)
	assert.Equal(t, []string{"/news", "https://partner.org/x", "", "//cdn.example.com/"}, links)
}

func TestGoqueryLinkExtractorToleratesBrokenMarkup(t *testing.T) {
	t.Parallel()

	links, err := GoqueryLinkExtractor{}.Links([]byte(`<p><a href="/a">one<a href="/b">two`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, links)
}
