package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "ja", req.Source)
		assert.Equal(t, "en", req.Target)
		assert.Equal(t, "secret", req.APIKey)
		if req.Q == "猫" {
			_ = json.NewEncoder(w).Encode(response{TranslatedText: "cat"})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(response{Error: "unsupported"})
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, APIKey: "secret"})
	ctx := context.Background()

	got, err := c.Translate(ctx, "猫")
	require.NoError(t, err)
	assert.Equal(t, "cat", got)

	_, err = c.Translate(ctx, "犬")
	assert.ErrorIs(t, err, ErrTranslate)
	assert.Contains(t, err.Error(), "unsupported")

	got, err = c.Translate(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTranslateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(Config{URL: srv.URL})
	_, err := c.Translate(context.Background(), "猫")
	assert.ErrorIs(t, err, ErrTranslate)
	assert.Equal(t, Placeholder, OrPlaceholder(context.Background(), c, "猫"))
	assert.Equal(t, Placeholder, OrPlaceholder(context.Background(), nil, "猫"))
}
