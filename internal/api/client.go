package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glabrego/reachon-admin/internal/content"
	"github.com/glabrego/reachon-admin/internal/session"
)

// User is the subset of admin user fields shown in the users screen.
type User struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Signup    string `json:"signup"`
	LastLogin string `json:"lastLogin"`
}

// TokenSource yields the bearer credential for each request.
type TokenSource interface {
	AccessToken() string
}

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
		logger:  logger.Named("api"),
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (session.Tokens, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return session.Tokens{}, fmt.Errorf("encode login payload: %w", err)
	}
	var tokens session.Tokens
	if err := c.send(ctx, "login", http.MethodPost, "/admin/login", bytes.NewReader(payload), jsonContentType, false, &tokens); err != nil {
		return session.Tokens{}, err
	}
	return tokens, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	raw, err := c.fetch(ctx, "list users", "/admin/users")
	if err != nil {
		return nil, err
	}
	return decodeList[User](c.logger, "users", raw, false), nil
}

func (c *Client) SearchUsers(ctx context.Context, term string) ([]User, error) {
	raw, err := c.fetch(ctx, "search users", "/admin/users/search?q="+url.QueryEscape(term))
	if err != nil {
		return nil, err
	}
	return decodeList[User](c.logger, "user search", raw, true), nil
}

func (c *Client) ListPosts(ctx context.Context) ([]content.RawPost, error) {
	raw, err := c.fetch(ctx, "list posts", "/admin/posts")
	if err != nil {
		return nil, err
	}
	return decodeList[content.RawPost](c.logger, "posts", raw, false), nil
}

func (c *Client) ListFastRs(ctx context.Context) ([]content.RawFastR, error) {
	raw, err := c.fetch(ctx, "list fastr", "/fastr")
	if err != nil {
		return nil, err
	}
	return decodeList[content.RawFastR](c.logger, "fastr", raw, true), nil
}

// CreatePost sends a multipart body assembled by the submission builder.
func (c *Client) CreatePost(ctx context.Context, body io.Reader, contentType string) error {
	return c.send(ctx, "create post", http.MethodPost, "/admin/posts", body, contentType, true, nil)
}

func (c *Client) CreateFastR(ctx context.Context, body io.Reader, contentType string) error {
	var result struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID string `json:"_id"`
		} `json:"data"`
	}
	if err := c.send(ctx, "create fastr", http.MethodPost, "/fastr", body, contentType, true, &result); err != nil {
		return err
	}
	if result.Success != nil && !*result.Success {
		return &ServerError{Op: "create fastr", Status: http.StatusOK, Message: result.Message}
	}
	c.logger.Info("fastr created", zap.String("id", result.Data.ID))
	return nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.send(ctx, "delete post", http.MethodDelete, "/admin/posts/"+url.PathEscape(id), nil, "", true, nil)
}

func (c *Client) DeleteFastR(ctx context.Context, id string) error {
	return c.send(ctx, "delete fastr", http.MethodDelete, "/fastr/"+url.PathEscape(id), nil, "", true, nil)
}

// BlockPost hides a post. The posts route keeps its trailing slash.
func (c *Client) BlockPost(ctx context.Context, id string) error {
	return c.send(ctx, "block post", http.MethodPatch, "/admin/posts/"+url.PathEscape(id)+"/block/", bytes.NewReader(blockBody), jsonContentType, true, nil)
}

func (c *Client) BlockFastR(ctx context.Context, id string) error {
	return c.send(ctx, "block fastr", http.MethodPatch, "/fastr/"+url.PathEscape(id)+"/block", bytes.NewReader(blockBody), jsonContentType, true, nil)
}

const jsonContentType = "application/json"

var blockBody = []byte(`{"isActive":false}`)

func (c *Client) fetch(ctx context.Context, op, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "", true)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverError(op, resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, op, method, path string, body io.Reader, contentType string, authenticated bool, out any) error {
	req, err := c.newRequest(ctx, method, path, body, contentType, authenticated)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string, authenticated bool) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !authenticated {
		return req, nil
	}
	token := ""
	if c.tokens != nil {
		token = c.tokens.AccessToken()
	}
	if token == "" {
		c.logger.Warn("no access token in session, sending request unauthenticated",
			zap.String("method", method),
			zap.String("path", path),
		)
		return req, nil
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func serverError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var structured struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &structured)
	return &ServerError{
		Op:      op,
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(structured.Message),
		Body:    strings.TrimSpace(string(body)),
	}
}

// decodeList tolerates backend drift: a body that is not an array (or whose
// data field is not one) becomes an empty list, and records that fail to
// decode are skipped.
func decodeList[T any](logger *zap.Logger, resource string, raw []byte, enveloped bool) []T {
	if enveloped {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			logger.Warn("response is not an object, treating as empty", zap.String("resource", resource), zap.Error(err))
			return []T{}
		}
		raw = envelope.Data
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		logger.Warn("response is not a list, treating as empty", zap.String("resource", resource), zap.Error(err))
		return []T{}
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			logger.Warn("skipping malformed record", zap.String("resource", resource), zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out
}
