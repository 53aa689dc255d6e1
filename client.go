package linkdealer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/emrgen/linkdealer/schema"
)

// Client talks to a running linkdealer server over its json api.
type Client struct {
	addr     string
	username string
	password string
	client   *http.Client
}

// NewClient creates a client for the server at addr, e.g.
// "http://localhost:4000".
func NewClient(addr, username, password string) *Client {
	return &Client{
		addr:     addr,
		username: username,
		password: password,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Info(ctx context.Context) (*schema.Info, error) {
	info := &schema.Info{}
	if err := c.do(ctx, http.MethodGet, "/api/info", nil, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) UpdateInfo(ctx context.Context, in *schema.Info) (*schema.Info, error) {
	info := &schema.Info{}
	if err := c.do(ctx, http.MethodPost, "/api/update_info", in, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) CreateLink(ctx context.Context, in *schema.LinkCreate) (*schema.Link, error) {
	link := &schema.Link{}
	if err := c.do(ctx, http.MethodPost, "/api/create_link", in, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (c *Client) MakeUTM(ctx context.Context, in *schema.UTMInfo) (*schema.UTMs, error) {
	utms := &schema.UTMs{}
	if err := c.do(ctx, http.MethodPost, "/api/make_utm", in, utms); err != nil {
		return nil, err
	}
	return utms, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.addr+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var envelope struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, envelope.Error.Message)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
