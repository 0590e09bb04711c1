// Package registry publishes inferred schemas to a siege schema registry.
package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/siegeai/siegeschema/schema"
)

var (
	ErrUnexpectedResponse = errors.New("unexpected response code")
	ErrMissingAPIKey      = errors.New("missing registry api key")
	ErrMissingServer      = errors.New("missing registry server")
)

type Client struct {
	APIKey string
	Server string
	HTTP   *http.Client
	// Now stamps updates. Defaults to time.Now.
	Now func() time.Time
}

func NewClient(apikey, server string) (*Client, error) {
	if apikey == "" {
		return nil, ErrMissingAPIKey
	}
	if server == "" {
		return nil, ErrMissingServer
	}
	client := &Client{
		APIKey: apikey,
		Server: strings.TrimRight(server, "/"),
		HTTP:   &http.Client{Timeout: 30 * time.Second},
		Now:    time.Now,
	}
	return client, nil
}

// Update is one published schema. Schema holds the canonical JSON encoding.
type Update struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	InferredAt time.Time       `json:"inferredAt"`
	Schema     json.RawMessage `json:"schema"`
}

// NewUpdate wraps s for publishing under a fresh id.
func (c *Client) NewUpdate(source string, s schema.Schema) (Update, error) {
	bs, err := schema.Marshal(s)
	if err != nil {
		return Update{}, err
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return Update{
		ID:         uuid.NewString(),
		Source:     source,
		InferredAt: now().UTC(),
		Schema:     bs,
	}, nil
}

func (c *Client) Publish(ctx context.Context, args Update) error {
	u := c.formatURL("/api/v1/schemas")

	bs, err := json.Marshal(&args)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(bs))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedResponse, res.StatusCode)
	}

	return nil
}

// PublishSchema publishes s as inferred from source.
func (c *Client) PublishSchema(ctx context.Context, source string, s schema.Schema) error {
	u, err := c.NewUpdate(source, s)
	if err != nil {
		return err
	}
	return c.Publish(ctx, u)
}

func (c *Client) formatURL(path string) string {
	return fmt.Sprintf("%s%s", c.Server, path)
}
