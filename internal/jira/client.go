package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/tim/internal/logging"
)

// StartedLayout is the timestamp format the tracker expects for worklog starts.
const StartedLayout = "2006-01-02T15:04:05.000-0700"

// Worklog is the payload of a worklog submission.
type Worklog struct {
	Comment          string `json:"comment"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Started          string `json:"started"`
}

// Client is an authenticated tracker API client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	creds      Credentials
	bearer     bool
}

// NewClient creates a client for creds.Host. With a non-empty token the
// client authenticates every request with it as a bearer token; otherwise
// Login must be called to open a cookie session.
func NewClient(ctx context.Context, creds Credentials, token string) (*Client, error) {
	base, err := normalizeHost(creds.Host)
	if err != nil {
		return nil, err
	}
	c := &Client{baseURL: base, creds: creds}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		c.httpClient = oauth2.NewClient(ctx, ts)
		c.bearer = true
		return c, nil
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	c.httpClient = &http.Client{Jar: jar}
	return c, nil
}

func normalizeHost(host string) (*url.URL, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, fmt.Errorf("jira host is empty")
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid jira host %q", host)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

type sessionResponse struct {
	Session struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"session"`
}

// Login opens a session with username and password. It is a no-op for
// bearer token clients.
func (c *Client) Login(ctx context.Context) error {
	if c.bearer {
		return nil
	}
	payload := map[string]string{"username": c.creds.Username, "password": c.creds.Password}
	body, err := c.do(ctx, http.MethodPost, "/rest/auth/1/session", payload, http.StatusOK)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	var sr sessionResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return fmt.Errorf("decoding session response: %w", err)
	}
	if sr.Session.Name != "" && c.httpClient.Jar != nil {
		c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{Name: sr.Session.Name, Value: sr.Session.Value, Path: "/"}})
	}
	logging.Debugf("jira session opened for %s", c.creds.Username)
	return nil
}

// Verify checks that the session is usable.
func (c *Client) Verify(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, "/rest/api/2/myself", nil, http.StatusOK); err != nil {
		return fmt.Errorf("verifying session: %w", err)
	}
	return nil
}

// AddWorklog records time on the issue with the given key.
func (c *Client) AddWorklog(ctx context.Context, key string, w Worklog) error {
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "/worklog"
	if _, err := c.do(ctx, http.MethodPost, path, w, http.StatusCreated); err != nil {
		return fmt.Errorf("adding worklog to %s: %w", key, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, want int) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	logging.Debugf("jira %s %s -> %d", method, path, resp.StatusCode)
	if resp.StatusCode != want {
		return nil, fmt.Errorf("jira API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
