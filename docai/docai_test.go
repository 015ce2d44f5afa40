package docai

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redacter-man/pii-redacter/model"
)

// sampleDocument mirrors a minimal service result: one page, two tokens
// anchored into the text, the second with a sharded anchor.
func sampleDocument() *Document {
	return &Document{
		Text: "SSN: 123-45-6789 ",
		Pages: []Page{
			{
				PageNumber: 1,
				Tokens: []Token{
					{Layout: Layout{
						TextAnchor: TextAnchor{TextSegments: []TextSegment{{StartIndex: 0, EndIndex: 4}}},
						BoundingPoly: BoundingPoly{NormalizedVertices: []Vertex{
							{X: 0.1, Y: 0.25}, {X: 0.2, Y: 0.25}, {X: 0.2, Y: 0.3}, {X: 0.1, Y: 0.3},
						}},
						Confidence: 0.98,
					}},
					{Layout: Layout{
						TextAnchor: TextAnchor{TextSegments: []TextSegment{
							{StartIndex: 5, EndIndex: 11},
							{StartIndex: 11, EndIndex: 16},
						}},
						BoundingPoly: BoundingPoly{NormalizedVertices: []Vertex{
							{X: 0.25, Y: 0.25}, {X: 0.5, Y: 0.25}, {X: 0.5, Y: 0.3}, {X: 0.25, Y: 0.3},
						}},
						Confidence: 0.91,
					}},
				},
			},
		},
	}
}

func TestClientProcess(t *testing.T) {
	var gotAuth, gotContentType string
	var gotReq processRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, sonic.Unmarshal(body, &gotReq))

		resp, err := sonic.Marshal(processResponse{Document: *sampleDocument()})
		require.NoError(t, err)
		w.Write(resp)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{Endpoint: srv.URL, APIKey: "secret"})
	doc, err := client.Process(context.Background(), []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "text,pages.tokens", gotReq.FieldMask)
	assert.Equal(t, "application/pdf", gotReq.RawDocument.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")), gotReq.RawDocument.Content)

	assert.Equal(t, "SSN: 123-45-6789 ", doc.Text)
	require.Len(t, doc.Pages, 1)
	assert.Len(t, doc.Pages[0].Tokens, 2)
}

func TestClientProcessServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{Endpoint: srv.URL})
	_, err := client.Process(context.Background(), []byte("data"), "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "responses"))

	_, ok, err := cache.Load("/docs/statement.pdf")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, cache.Save("/docs/statement.pdf", sampleDocument()))

	got, ok, err := cache.Load("/docs/statement.pdf")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleDocument(), got, "cache hit must reproduce the response exactly")

	// Same base name, different directory: shares the entry by design.
	_, ok, err = cache.Load("/other/statement.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSourceExtract(t *testing.T) {
	src := NewSource(sampleDocument(), []PageSize{{Width: 612, Height: 792}})
	assert.Equal(t, model.BackendService, src.Backend())

	pages, text, err := src.Extract()
	require.NoError(t, err)
	assert.Equal(t, "SSN: 123-45-6789 ", text)
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, 612.0, page.Width)
	assert.Equal(t, 792.0, page.Height)
	require.Len(t, page.Tokens, 2)

	first := page.Tokens[0]
	assert.Empty(t, first.Text, "text comes from the indexer, not the adapter")
	assert.Equal(t, []model.TextSegment{{Start: 0, End: 4}}, first.Segments)
	require.Len(t, first.Polygon, 4)
	assert.Equal(t, 0.1, first.Polygon[0].X)
	assert.Equal(t, 0.3, first.Polygon[2].Y)
	assert.InDelta(t, 0.98, first.Confidence, 1e-9)

	second := page.Tokens[1]
	assert.Equal(t, []model.TextSegment{{Start: 5, End: 11}, {Start: 11, End: 16}}, second.Segments)
}

func TestSourcePageCountMismatch(t *testing.T) {
	src := NewSource(sampleDocument(), []PageSize{{Width: 612, Height: 792}, {Width: 612, Height: 792}})
	_, _, err := src.Extract()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page count mismatch")
}

func TestSourceNilDocument(t *testing.T) {
	src := NewSource(nil, nil)
	_, _, err := src.Extract()
	require.Error(t, err)
}
