package shortener

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api-ssl.bitly.com/v4/shorten"

// requestTimeout bounds the shortening call so a slow upstream cannot
// stall request handling.
const requestTimeout = 5 * time.Second

// NewBitly creates a bitly v4 shortening client.
func NewBitly(token string) *Bitly {
	return &Bitly{
		token:    token,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

type Bitly struct {
	token    string
	endpoint string
	client   *http.Client
}

type shortenRequest struct {
	LongURL string `json:"long_url"`
	Domain  string `json:"domain"`
}

type shortenResponse struct {
	Link string `json:"link"`
}

// Shorten asks bitly for a short link for longURL.
func (b *Bitly) Shorten(ctx context.Context, longURL string) (string, error) {
	body, err := json.Marshal(shortenRequest{
		LongURL: longURL,
		Domain:  "bit.ly",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", b.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("bitly returned status %d", res.StatusCode)
	}

	var out shortenResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}

	return out.Link, nil
}
