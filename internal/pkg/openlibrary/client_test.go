package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dogmaticsPayload = `{
  "ISBN:9780801026560": {
    "title": "Reformed Dogmatics",
    "subtitle": "Abridged",
    "notes": {"type": "/type/text", "value": "Four volume set."},
    "authors": [{"name": "Herman Bavinck"}, {"name": "John Bolt"}],
    "publishers": [{"name": "Baker Academic"}],
    "publish_date": "2003",
    "subjects": [{"name": "Reformed Church"}, {"name": "Theology, Doctrinal -- History"}],
    "identifiers": {
      "isbn_10": ["0801026563"],
      "isbn_13": ["9780801026324", "9780801026560", "9780801026553", "9780801035333"]
    },
    "number_of_pages": 704,
    "table_of_contents": [
      {"title": "v. 1. Prolegomena"},
      {"title": "v. 2. God and creation"},
      {"title": "v. 3. Sin and salvation in Christ"},
      {"title": "v. 4. Holy Spirit, church, and new creation"}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func TestLookupISBNParsesRecord(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/books", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dogmaticsPayload))
	})

	got, err := client.LookupISBN(context.Background(), "9780801026560")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "bibkeys=ISBN%3A9780801026560")
	assert.Contains(t, gotQuery, "jscmd=data")

	require.True(t, got.Found)
	assert.Equal(t, "Reformed Dogmatics", *got.Title)
	assert.Equal(t, "Herman Bavinck, John Bolt", *got.Author)
	assert.Equal(t, "Baker Academic", *got.Publisher)
	assert.Equal(t, "Theology, Doctrinal -- History", *got.Genre)
	assert.Equal(t, "0801026563", *got.ISBN10)
	assert.Equal(t, "9780801026324", *got.ISBN13)
	assert.Equal(t, "Four volume set.", *got.Description)
	assert.Equal(t, 704, *got.PageCount)
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/9780801026560-L.jpg", *got.CoverURL)

	require.NotNil(t, got.VolumeNumber)
	assert.Equal(t, 2, *got.VolumeNumber)
	assert.Equal(t, "God and creation", *got.VolumeTitle)
	assert.Equal(t, "Reformed Dogmatics", *got.SeriesTitle)
	assert.Equal(t, 4, *got.TotalVolumes)
}

func TestLookupISBNNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := client.LookupISBN(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Nil(t, got.Title)
}

func TestLookupISBNUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.LookupISBN(context.Background(), "0451524934")
	assert.Error(t, err)
}

func TestNormaliseFallbacks(t *testing.T) {
	rec := bookRecord{
		Title:    "1984",
		Subtitle: "A novel",
		Notes:    []byte(`"Plain notes"`),
		Subjects: []named{{Name: "Totalitarianism"}, {Name: "Political fiction"}},
		Cover:    map[string]string{"medium": "https://covers/m.jpg", "small": "https://covers/s.jpg"},
	}
	got := normalise("0451524934", rec)
	assert.Equal(t, "Political fiction", *got.Genre)
	assert.Equal(t, "Plain notes", *got.Description)
	assert.Equal(t, "https://covers/m.jpg", *got.CoverURL)
	assert.Nil(t, got.Author)
	assert.Nil(t, got.Publisher)
	assert.Nil(t, got.VolumeNumber)

	rec.Notes = nil
	rec.Subjects = []named{{Name: "Totalitarianism"}}
	got = normalise("0451524934", rec)
	assert.Equal(t, "A novel", *got.Description)
	assert.Equal(t, "Totalitarianism", *got.Genre)
}

func TestDetectVolume(t *testing.T) {
	toc := []string{"v. 1. Prolegomena", "V2 God and creation", "Index"}

	vol, ok := DetectVolume("222", "Dogmatics", toc, []string{"111", "222"})
	require.True(t, ok)
	assert.Equal(t, Volume{SeriesTitle: "Dogmatics", Number: 2, Title: "God and creation", Total: 2}, vol)

	vol, ok = DetectVolume("999", "Dogmatics", toc, []string{"111", "222", "333"})
	require.True(t, ok)
	assert.Equal(t, 1, vol.Number)
	assert.Equal(t, "Prolegomena", vol.Title)

	vol, ok = DetectVolume("978-222", "Dogmatics", toc, []string{"111", "978222"})
	require.True(t, ok)
	assert.Equal(t, 2, vol.Number)

	_, ok = DetectVolume("1", "Single", []string{"v. 1. Only"}, nil)
	assert.False(t, ok)

	_, ok = DetectVolume("1", "Anthology", []string{"v. 1. One", "Preface"}, nil)
	assert.False(t, ok)
}
