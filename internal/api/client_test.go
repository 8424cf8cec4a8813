package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func TestLogin_PostsCredentialsWithoutBearer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("login must not send authorization, got %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "admin@example.com" || body["password"] != "pw" {
			t.Fatalf("unexpected body: %#v", body)
		}
		_, _ = w.Write([]byte(`{"accessToken":"a1","refreshToken":"r1"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, ts.Client(), nil)
	tokens, err := c.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if tokens.AccessToken != "a1" || tokens.RefreshToken != "r1" {
		t.Fatalf("unexpected tokens: %#v", tokens)
	}
}

func TestLogin_ServerMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, ts.Client(), nil)
	_, err := c.Login(context.Background(), "admin@example.com", "bad")
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Status != http.StatusUnauthorized || serverErr.Message != "Invalid credentials" {
		t.Fatalf("unexpected server error: %#v", serverErr)
	}
}

func TestListPosts_SendsBearerAndDecodesBothIsActiveShapes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/posts" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"p1","title":"One","content":"<p>x</p>","createdAt":"2026-02-01T00:00:00Z","isActive":"Published"},
			{"_id":"p2","title":"Two","createdAt":"2026-02-02T00:00:00Z","isActive":false}
		]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", staticToken("tok"), ts.Client(), nil)
	posts, err := c.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if string(posts[0].IsActive) != `"Published"` || string(posts[1].IsActive) != "false" {
		t.Fatalf("unexpected isActive payloads: %s %s", posts[0].IsActive, posts[1].IsActive)
	}
}

func TestListPosts_NonArrayBodyIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"unexpected"}`))
	}))
	defer ts.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c := NewClient(ts.URL, staticToken("tok"), ts.Client(), zap.New(core))
	posts, err := c.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", posts)
	}
	if logs.FilterMessage("response is not a list, treating as empty").Len() != 1 {
		t.Fatalf("expected one warning, got %v", logs.All())
	}
}

func TestListFastRs_UnwrapsDataAndSkipsMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fastr" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"_id":"f1","title":"Clip","createdAt":"2026-02-03T00:00:00Z","isActive":true},
			{"_id":"f2","isActive":"yes"}
		]}`))
	}))
	defer ts.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c := NewClient(ts.URL, staticToken("tok"), ts.Client(), zap.New(core))
	items, err := c.ListFastRs(context.Background())
	if err != nil {
		t.Fatalf("ListFastRs returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "f1" {
		t.Fatalf("unexpected items: %#v", items)
	}
	if logs.FilterMessage("skipping malformed record").Len() != 1 {
		t.Fatalf("expected malformed record warning, got %v", logs.All())
	}
}

func TestSearchUsers_EscapesQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "ann & bob" {
			t.Fatalf("unexpected query: %q", got)
		}
		_, _ = w.Write([]byte(`{"data":[{"_id":"u1","username":"ann","email":"ann@example.com","role":"user"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("tok"), ts.Client(), nil)
	users, err := c.SearchUsers(context.Background(), "ann & bob")
	if err != nil {
		t.Fatalf("SearchUsers returned error: %v", err)
	}
	if len(users) != 1 || users[0].Username != "ann" {
		t.Fatalf("unexpected users: %#v", users)
	}
}

func TestListUsers_PlainArray(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"_id":"u1","username":"ann"},{"_id":"u2","username":"bob"}]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("tok"), ts.Client(), nil)
	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestModerationRoutes(t *testing.T) {
	tests := []struct {
		name       string
		call       func(*Client) error
		wantMethod string
		wantPath   string
		wantBody   string
	}{
		{"delete post", func(c *Client) error { return c.DeletePost(context.Background(), "p1") }, http.MethodDelete, "/admin/posts/p1", ""},
		{"delete fastr", func(c *Client) error { return c.DeleteFastR(context.Background(), "f1") }, http.MethodDelete, "/fastr/f1", ""},
		{"block post", func(c *Client) error { return c.BlockPost(context.Background(), "p1") }, http.MethodPatch, "/admin/posts/p1/block/", `{"isActive":false}`},
		{"block fastr", func(c *Client) error { return c.BlockFastR(context.Background(), "f1") }, http.MethodPatch, "/fastr/f1/block", `{"isActive":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath, gotBody string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				raw, _ := io.ReadAll(r.Body)
				gotBody = string(raw)
				w.WriteHeader(http.StatusOK)
			}))
			defer ts.Close()

			c := NewClient(ts.URL, staticToken("tok"), ts.Client(), nil)
			if err := tt.call(c); err != nil {
				t.Fatalf("call returned error: %v", err)
			}
			if gotMethod != tt.wantMethod || gotPath != tt.wantPath {
				t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
			}
			if gotBody != tt.wantBody {
				t.Fatalf("unexpected body: %q", gotBody)
			}
		})
	}
}

func TestCreatePost_ForwardsMultipartContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/posts" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "multipart/form-data; boundary=xyz" {
			t.Fatalf("unexpected content type: %s", got)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"p9"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("tok"), ts.Client(), nil)
	if err := c.CreatePost(context.Background(), strings.NewReader("--xyz--"), "multipart/form-data; boundary=xyz"); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
}

func TestCreateFastR_SuccessFalseIsServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Audio is required"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("tok"), ts.Client(), nil)
	err := c.CreateFastR(context.Background(), strings.NewReader(""), "multipart/form-data; boundary=xyz")
	if got := UserMessage(err, "Failed to create FastR"); got != "Audio is required" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestMissingTokenWarnsAndProceeds(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("expected no authorization header, got %q", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c := NewClient(ts.URL, staticToken(""), ts.Client(), zap.New(core))
	err := c.DeletePost(context.Background(), "p1")
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if logs.FilterMessage("no access token in session, sending request unauthenticated").Len() != 1 {
		t.Fatalf("expected missing token warning, got %v", logs.All())
	}
}

func TestNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewClient(url, staticToken("tok"), nil, nil)
	_, err := c.ListPosts(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
