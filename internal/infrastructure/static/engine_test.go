package static

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AspectScanner/internal/logging"
	"AspectScanner/internal/ports"
)

const fixturePage = `<html><body>
<div id="content">
	<h1 class="title">Заголовок страницы</h1>
	<ul>
		<li><a href="/first">первая</a></li>
		<li><a href="/second">вторая</a></li>
	</ul>
	<button disabled>недоступно</button>
</div>
</body></html>`

func newFixtureEngine(t *testing.T) (*Engine, *httptest.Server) {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fixturePage)
	})
	mux.HandleFunc("/second", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p class="mark">вторая страница</p></body></html>`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	engine := New(5*time.Second, logging.New("error"))
	t.Cleanup(func() { engine.Quit() })
	return engine, server
}

func TestNavigateAndLocate(t *testing.T) {
	t.Parallel()

	engine, server := newFixtureEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.Navigate(ctx, server.URL+"/"))

	byCSS, err := engine.Element(ctx, ports.CSS("h1.title"))
	require.NoError(t, err)
	text, err := byCSS.Text()
	require.NoError(t, err)
	assert.Equal(t, "Заголовок страницы", text)

	byXPath, err := engine.Element(ctx, ports.XPath("//div[@id='content']//h1"))
	require.NoError(t, err)
	text, err = byXPath.Text()
	require.NoError(t, err)
	assert.Equal(t, "Заголовок страницы", text)

	anchors, err := engine.Elements(ctx, ports.CSS("ul a"))
	require.NoError(t, err)
	assert.Len(t, anchors, 2)

	current, err := engine.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/", current)
}

func TestClickAnchorNavigates(t *testing.T) {
	t.Parallel()

	engine, server := newFixtureEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.Navigate(ctx, server.URL+"/"))

	anchors, err := engine.Elements(ctx, ports.CSS("ul a"))
	require.NoError(t, err)
	require.NoError(t, anchors[1].Click(), "relative href resolves against the page URL")

	mark, err := engine.Element(ctx, ports.CSS("p.mark"))
	require.NoError(t, err)
	text, err := mark.Text()
	require.NoError(t, err)
	assert.Equal(t, "вторая страница", text)
}

func TestInteractionLimits(t *testing.T) {
	t.Parallel()

	engine, server := newFixtureEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.Navigate(ctx, server.URL+"/"))

	button, err := engine.Element(ctx, ports.CSS("button"))
	require.NoError(t, err)

	assert.ErrorIs(t, button.Click(), ports.ErrInteractionUnsupported)
	assert.ErrorIs(t, button.Input("текст"), ports.ErrInteractionUnsupported)

	enabled, err := button.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled, "the disabled attribute is honored")
}

func TestWaitsDegradeToImmediateLookups(t *testing.T) {
	t.Parallel()

	engine, server := newFixtureEngine(t)
	ctx := context.Background()
	require.NoError(t, engine.Navigate(ctx, server.URL+"/"))

	_, err := engine.WaitVisible(ctx, ports.CSS("div.absent"), time.Hour)
	assert.ErrorIs(t, err, ports.ErrWaitTimeout, "an unresolved wait reports a timeout immediately")

	all, err := engine.WaitVisibleAll(ctx, ports.CSS("ul a"), time.Hour)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNavigateFaults(t *testing.T) {
	t.Parallel()

	engine, server := newFixtureEngine(t)
	ctx := context.Background()

	err := engine.Navigate(ctx, server.URL+"/missing-page")
	assert.ErrorIs(t, err, ports.ErrEngineFault)

	_, err = engine.Element(ctx, ports.CSS("h1"))
	assert.ErrorIs(t, err, ports.ErrEngineFault, "no document loaded yet")
}
