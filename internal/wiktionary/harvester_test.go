package wiktionary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AspectScanner/internal/domain"
	"AspectScanner/internal/infrastructure/static"
	"AspectScanner/internal/logging"
)

func articlePage(stress, etymology, morphemes string) string {
	return fmt.Sprintf(`<html><body>
<h1>Заголовок</h1>
<p>%s</p>
<p>%s</p>
<p>%s</p>
<p>Прочее.</p>
</body></html>`, stress, etymology, morphemes)
}

func newHarvesterOverFixture(t *testing.T, handler http.Handler) (*Harvester, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	browser := static.New(5*time.Second, logging.New("error"))
	t.Cleanup(func() { browser.Quit() })

	return NewHarvester(browser, logging.New("error")), server
}

func TestHarvestFiltersByCitationMarker(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/атаковать", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(
			"атакова́ть",
			"Происходит от франц. attaquer.",
			"Корень: -атак-; суффикс: -ова; глагольное окончание: -ть [Тихонов, 1996].",
		))
	})
	mux.HandleFunc("/wiki/жениться", func(w http.ResponseWriter, r *http.Request) {
		// No citation marker: the article contributes nothing.
		fmt.Fprint(w, articlePage(
			"жени́ться",
			"Происходит от жена.",
			"Корень: -жен-; суффикс: -и; глагольное окончание: -ть-ся.",
		))
	})

	harvester, server := newHarvesterOverFixture(t, mux)
	index := domain.VerbArticleIndex{
		"атаковать": server.URL + "/wiki/атаковать",
		"жениться":  server.URL + "/wiki/жениться",
	}

	records, err := harvester.Harvest(context.Background(), index)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "атаковать", records[0].Lemma)
	assert.Equal(t, "атакова́ть", records[0].Stress)
	assert.Contains(t, records[0].MorphemicAnalysis, "[Тихонов, 1996]")
}

func TestHarvestAbortsOnMalformedPage(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/арестовать", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(
			"арестова́ть",
			"Происходит от нем. Arrest.",
			"Корень: -арестова-; окончание: -ть [Тихонов, 1996].",
		))
	})
	mux.HandleFunc("/wiki/венчать", func(w http.ResponseWriter, r *http.Request) {
		// Fewer paragraph blocks than the positional layout requires.
		fmt.Fprint(w, `<html><body><p>венча́ть</p></body></html>`)
	})
	mux.HandleFunc("/wiki/казнить", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage(
			"казни́ть",
			"Происходит от казнь.",
			"Корень: -казн-; суффикс: -и; глагольное окончание: -ть [Тихонов, 1996].",
		))
	})

	harvester, server := newHarvesterOverFixture(t, mux)
	// Sorted label order: арестовать, венчать, казнить. The malformed
	// second article must abort the harvest before the third is visited.
	index := domain.VerbArticleIndex{
		"арестовать": server.URL + "/wiki/арестовать",
		"венчать":    server.URL + "/wiki/венчать",
		"казнить":    server.URL + "/wiki/казнить",
	}

	records, err := harvester.Harvest(context.Background(), index)
	require.ErrorIs(t, err, ErrMalformedArticle)
	require.Len(t, records, 1, "records accumulated before the abort are kept")
	assert.Equal(t, "арестовать", records[0].Lemma)
}

func TestHarvestNavigationFaultAbortsWithPartialRecords(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	harvester, server := newHarvesterOverFixture(t, mux)

	index := domain.VerbArticleIndex{"атаковать": server.URL + "/wiki/атаковать"}

	records, err := harvester.Harvest(context.Background(), index)
	require.Error(t, err)
	assert.Empty(t, records)
}
