package hadith

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchServer(t *testing.T, results int, capture *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/site/hadith/search", r.URL.Path)
		if capture != nil {
			q := r.URL.Query()
			got := make(map[string]string)
			for k := range q {
				got[k] = q.Get(k)
			}
			*capture = got
		}

		var data []Result
		for i := 0; i < results; i++ {
			data = append(data, Result{
				Hadith: fmt.Sprintf("<p>hadith %d</p>", i),
				Rawi:   "rawi",
				Grade:  "صحيح",
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
}

func TestClientSearchParams(t *testing.T) {
	var params map[string]string
	srv := searchServer(t, 2, &params)
	defer srv.Close()

	cl := NewClient(Config{APIBase: srv.URL})
	results, err := cl.Search(context.Background(), "الصلاة", false)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "الصلاة", params["value"])
	assert.Equal(t, "1", params["d[]"])
	assert.Equal(t, "false", params["removehtml"])
	assert.Equal(t, "true", params["specialist"])
}

func TestClientSearchAllGrades(t *testing.T) {
	var params map[string]string
	srv := searchServer(t, 1, &params)
	defer srv.Close()

	cl := NewClient(Config{APIBase: srv.URL})
	_, err := cl.Search(context.Background(), "query", true)
	require.NoError(t, err)
	assert.Equal(t, "0", params["d[]"])
}

func TestClientSearchCapsResults(t *testing.T) {
	srv := searchServer(t, 30, nil)
	defer srv.Close()

	cl := NewClient(Config{APIBase: srv.URL})
	results, err := cl.Search(context.Background(), "q", false)
	require.NoError(t, err)
	assert.Len(t, results, DefaultMaxResults)
}

func TestClientSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cl := NewClient(Config{APIBase: srv.URL})
	_, err := cl.Search(context.Background(), "q", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClientFetchSharh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/site/sharh/123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"sharhMetadata": map[string]any{"sharh": "نص الشرح"},
			},
		})
	}))
	defer srv.Close()

	cl := NewClient(Config{APIBase: srv.URL})
	sharh, err := cl.FetchSharh(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "نص الشرح", sharh)
}

func TestExtractGradeFilter(t *testing.T) {
	q, all := ExtractGradeFilter("الصلاة")
	assert.Equal(t, "الصلاة", q)
	assert.False(t, all)

	q, all = ExtractGradeFilter("الصلاة 0")
	assert.Equal(t, "الصلاة", q)
	assert.True(t, all)

	q, all = ExtractGradeFilter("0 الصوم")
	assert.Equal(t, "الصوم", q)
	assert.True(t, all)
}

func TestSharhMetadataNumericID(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(
		`{"hadith":"x","hasSharhMetadata":true,"sharhMetadata":{"id":4573,"isContainSharh":true}}`), &r))
	require.NotNil(t, r.SharhMetadata)
	assert.Equal(t, "4573", r.SharhMetadata.ID.String())
}
