package registry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/siegeai/siegeschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("", "http://localhost")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	_, err = NewClient("key", "")
	assert.ErrorIs(t, err, ErrMissingServer)

	c, err := NewClient("key", "http://localhost:9000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/v1/schemas", c.formatURL("/api/v1/schemas"))
}

func TestPublishSchema(t *testing.T) {
	var got Update
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/schemas", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		bs, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(bs, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient("secret", srv.URL)
	require.NoError(t, err)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.Now = func() time.Time { return at }

	s := schema.NewStruct(schema.NewField("a", schema.NewPrimitive(schema.Integer)))
	require.NoError(t, c.PublishSchema(context.Background(), "events.json", s))

	assert.Equal(t, "events.json", got.Source)
	assert.True(t, at.Equal(got.InferredAt))
	_, err = uuid.Parse(got.ID)
	assert.NoError(t, err)

	back, err := schema.Parse(got.Schema)
	require.NoError(t, err)
	assert.True(t, schema.Equal(s, back))
}

func TestPublishUnexpectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient("wrong", srv.URL)
	require.NoError(t, err)
	err = c.PublishSchema(context.Background(), "x.json", schema.DefaultArray())
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
	assert.ErrorContains(t, err, "401")
}

func TestPublishCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c, err := NewClient("key", srv.URL)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = c.PublishSchema(ctx, "x.json", schema.DefaultArray())
	assert.ErrorIs(t, err, context.Canceled)
}
