package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("RESIDUE,STRUCTURE\nA,H\n"))
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.URL+"/table.csv")
	require.NoError(t, err)
	assert.Equal(t, "RESIDUE,STRUCTURE\nA,H\n", string(body))

	_, err = Get(context.Background(), srv.URL+"/missing")
	assert.EqualError(t, err, "HTTP status code 404")
}

func TestGetCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, "http://127.0.0.1:1/")
	assert.Error(t, err)
}
