package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glabrego/reachon-admin/internal/api"
	"github.com/glabrego/reachon-admin/internal/content"
	"github.com/glabrego/reachon-admin/internal/session"
	"github.com/glabrego/reachon-admin/internal/submission"
)

// Generic messages shown when a failure carries nothing more specific.
const (
	MsgLoginFailed     = "Login failed. Try again."
	MsgLoadFeedFailed  = "Failed to load posts or FastRs"
	MsgLoadUsersFailed = "Failed to load users"
	MsgSubmitPost      = "Failed to submit post. Please try again."
	MsgSubmitFastR     = "Failed to create FastR. Please try again."
)

// InputError is a local form rejection shown verbatim.
type InputError string

func (e InputError) Error() string       { return string(e) }
func (e InputError) UserMessage() string { return string(e) }

const ErrMissingCredentials = InputError("Email and password are required.")

type Client interface {
	Login(ctx context.Context, email, password string) (session.Tokens, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	SearchUsers(ctx context.Context, term string) ([]api.User, error)
	ListPosts(ctx context.Context) ([]content.RawPost, error)
	ListFastRs(ctx context.Context) ([]content.RawFastR, error)
	CreatePost(ctx context.Context, body io.Reader, contentType string) error
	CreateFastR(ctx context.Context, body io.Reader, contentType string) error
	DeletePost(ctx context.Context, id string) error
	DeleteFastR(ctx context.Context, id string) error
	BlockPost(ctx context.Context, id string) error
	BlockFastR(ctx context.Context, id string) error
}

type Repository interface {
	SaveTokens(ctx context.Context, tokens session.Tokens) error
	LoadTokens(ctx context.Context) (session.Tokens, error)
	ClearTokens(ctx context.Context) error
}

type Service struct {
	client  Client
	repo    Repository
	session *session.Session
	gate    *submission.Gate
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(client Client, repo Repository, sess *session.Session, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		repo:    repo,
		session: sess,
		gate:    submission.NewGate(),
		logger:  logger.Named("app"),
		now:     time.Now,
	}
}

// Login exchanges credentials for tokens, then persists them and makes them
// the active session.
func (s *Service) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	tokens, err := s.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if tokens.AccessToken == "" {
		return errors.New("login: response carried no access token")
	}
	if err := s.repo.SaveTokens(ctx, tokens); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.session.Set(tokens)
	s.logger.Info("signed in", zap.String("email", email))
	return nil
}

// RestoreSession loads persisted tokens and reports whether they are still
// usable. Expired tokens are cleared.
func (s *Service) RestoreSession(ctx context.Context) (bool, error) {
	tokens, err := s.repo.LoadTokens(ctx)
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if tokens.Empty() {
		return false, nil
	}
	s.session.Set(tokens)
	if s.session.Active(s.now()) {
		return true, nil
	}
	s.session.Clear()
	s.logger.Info("stored access token missing or expired")
	if err := s.repo.ClearTokens(ctx); err != nil {
		return false, fmt.Errorf("clear expired session: %w", err)
	}
	return false, nil
}

func (s *Service) SignOut(ctx context.Context) error {
	s.session.Clear()
	if err := s.repo.ClearTokens(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}

// LoadFeed fetches posts and FastRs concurrently and merges them newest
// first. Either failure fails the whole load.
func (s *Service) LoadFeed(ctx context.Context) (content.Feed, error) {
	var posts []content.RawPost
	var fastRs []content.RawFastR

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.client.ListPosts(gctx)
		if err != nil {
			return fmt.Errorf("fetch posts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fastRs, err = s.client.ListFastRs(gctx)
		if err != nil {
			return fmt.Errorf("fetch fastr: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("feed load failed", zap.Error(err))
		return content.NewFeed(nil), err
	}
	return content.NewFeed(content.Merge(posts, fastRs)), nil
}

// Delete removes item through the endpoint matching its source.
func (s *Service) Delete(ctx context.Context, item content.FeedItem) error {
	var err error
	switch item.Source {
	case content.SourceFastR:
		err = s.client.DeleteFastR(ctx, item.ID)
	default:
		err = s.client.DeletePost(ctx, item.ID)
	}
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", item.Source, item.ID, err)
	}
	s.logger.Info("deleted", zap.String("source", string(item.Source)), zap.String("id", item.ID))
	return nil
}

// Block hides item through the endpoint matching its source.
func (s *Service) Block(ctx context.Context, item content.FeedItem) error {
	var err error
	switch item.Source {
	case content.SourceFastR:
		err = s.client.BlockFastR(ctx, item.ID)
	default:
		err = s.client.BlockPost(ctx, item.ID)
	}
	if err != nil {
		return fmt.Errorf("block %s %s: %w", item.Source, item.ID, err)
	}
	s.logger.Info("blocked", zap.String("source", string(item.Source)), zap.String("id", item.ID))
	return nil
}

// Submit validates and sends d. A second submit of the same draft while the
// first is in flight fails with submission.ErrInFlight.
func (s *Service) Submit(ctx context.Context, kind submission.Kind, d *submission.Draft) error {
	release, err := s.gate.Acquire(d.ID)
	if err != nil {
		return err
	}
	defer release()

	payload, err := submission.Build(kind, d)
	if err != nil {
		return err
	}
	if kind == submission.KindFastR {
		err = s.client.CreateFastR(ctx, payload.Body, payload.ContentType)
	} else {
		err = s.client.CreatePost(ctx, payload.Body, payload.ContentType)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", kind, err)
	}
	s.logger.Info("submitted", zap.Stringer("kind", kind), zap.String("draft", d.ID))
	return nil
}

// Users lists every user, or searches when query is non-blank.
func (s *Service) Users(ctx context.Context, query string) ([]api.User, error) {
	query = strings.TrimSpace(query)
	var (
		users []api.User
		err   error
	)
	if query == "" {
		users, err = s.client.ListUsers(ctx)
	} else {
		users, err = s.client.SearchUsers(ctx, query)
	}
	if err != nil {
		return []api.User{}, fmt.Errorf("fetch users: %w", err)
	}
	return users, nil
}
