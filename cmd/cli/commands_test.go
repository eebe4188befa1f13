package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestURL(t *testing.T) {
	host = "http://mesa.test"
	defer func() { dryRun = false }()

	assert.Equal(t, "http://mesa.test/state", requestURL("/state", nil))
	assert.Equal(t, "http://mesa.test/players?name=Rian", requestURL("/players", url.Values{"name": {"Rian"}, "emoji": {""}}))

	dryRun = true
	assert.Equal(t, "http://mesa.test/match/start?dry_run=true&mode=SOLO", requestURL("/match/start", url.Values{"mode": {"SOLO"}}))
}

func TestDoRequest(t *testing.T) {
	var gotMethod, gotQuery, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotQuery = r.Method, r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		if r.URL.Path == "/fail" {
			http.Error(w, "nope", http.StatusConflict)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()
	host = srv.URL

	body, err := doRequest(http.MethodPost, "/import", nil, []byte(`{"players":{}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, `{"players":{}}`, gotBody)
	assert.Empty(t, gotQuery)

	_, err = doRequest(http.MethodPost, "/fail", url.Values{"id": {"p1"}}, nil)
	assert.ErrorContains(t, err, "409")
	assert.Equal(t, "id=p1", gotQuery)
}
