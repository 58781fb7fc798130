// Package translate is a client for a LibreTranslate-compatible machine
// translation service.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTranslate wraps every transport, status and decoding failure.
var ErrTranslate = errors.New("translate: request failed")

// Placeholder stands in for a translation that could not be obtained.
const Placeholder = "<translation failed>"

// Translator turns text into the target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

type Config struct {
	URL     string
	Source  string
	Target  string
	APIKey  string
	Timeout time.Duration
}

// Client posts translation requests to Config.URL.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.Source == "" {
		cfg.Source = "ja"
	}
	if cfg.Target == "" {
		cfg.Target = "en"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type response struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate returns the translation of text. Empty text translates to
// itself without a request.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	body, err := json.Marshal(request{Q: text, Source: c.cfg.Source, Target: c.cfg.Target, Format: "text", APIKey: c.cfg.APIKey})
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrTranslate, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslate, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslate, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read: %v", ErrTranslate, err)
	}
	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: status %d: decode: %v", ErrTranslate, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrTranslate, resp.StatusCode, out.Error)
	}
	return out.TranslatedText, nil
}

// OrPlaceholder translates text with t, substituting Placeholder on any
// failure.
func OrPlaceholder(ctx context.Context, t Translator, text string) string {
	if t == nil {
		return Placeholder
	}
	s, err := t.Translate(ctx, text)
	if err != nil {
		return Placeholder
	}
	return s
}
