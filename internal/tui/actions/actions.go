package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/reachon-admin/internal/api"
	"github.com/glabrego/reachon-admin/internal/content"
	"github.com/glabrego/reachon-admin/internal/submission"
)

const (
	requestTimeout = 10 * time.Second
	submitTimeout  = 60 * time.Second
)

type Service interface {
	Login(ctx context.Context, email, password string) error
	RestoreSession(ctx context.Context) (bool, error)
	SignOut(ctx context.Context) error
	LoadFeed(ctx context.Context) (content.Feed, error)
	Delete(ctx context.Context, item content.FeedItem) error
	Block(ctx context.Context, item content.FeedItem) error
	Submit(ctx context.Context, kind submission.Kind, d *submission.Draft) error
	Users(ctx context.Context, query string) ([]api.User, error)
}

type Moderation string

const (
	ModerationDelete Moderation = "delete"
	ModerationBlock  Moderation = "block"
)

type SessionRestoredMsg struct {
	Active bool
	Err    error
}

type LoginSuccessMsg struct{}

type LoginErrorMsg struct {
	Err error
}

type SignedOutMsg struct {
	Err error
}

type FeedLoadSuccessMsg struct {
	Feed content.Feed
}

type FeedLoadErrorMsg struct {
	Err error
}

type ModerationSuccessMsg struct {
	Action Moderation
	Item   content.FeedItem
}

type ModerationErrorMsg struct {
	Action Moderation
	Item   content.FeedItem
	Err    error
}

type SubmitSuccessMsg struct {
	Kind    submission.Kind
	DraftID string
}

type SubmitErrorMsg struct {
	Kind    submission.Kind
	DraftID string
	Err     error
}

type UsersLoadSuccessMsg struct {
	Query string
	Users []api.User
}

type UsersLoadErrorMsg struct {
	Query string
	Err   error
}

type PlatformSuccessMsg struct {
	Status string
}

type PlatformErrorMsg struct {
	Err error
}

func RestoreSessionCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		active, err := service.RestoreSession(ctx)
		return SessionRestoredMsg{Active: active, Err: err}
	}
}

func LoginCmd(service Service, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := service.Login(ctx, email, password); err != nil {
			return LoginErrorMsg{Err: err}
		}
		return LoginSuccessMsg{}
	}
}

func SignOutCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return SignedOutMsg{Err: service.SignOut(ctx)}
	}
}

func LoadFeedCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		feed, err := service.LoadFeed(ctx)
		if err != nil {
			return FeedLoadErrorMsg{Err: err}
		}
		return FeedLoadSuccessMsg{Feed: feed}
	}
}

func DeleteCmd(service Service, item content.FeedItem) tea.Cmd {
	return moderationCmd(ModerationDelete, item, service.Delete)
}

func BlockCmd(service Service, item content.FeedItem) tea.Cmd {
	return moderationCmd(ModerationBlock, item, service.Block)
}

func moderationCmd(action Moderation, item content.FeedItem, fn func(context.Context, content.FeedItem) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := fn(ctx, item); err != nil {
			return ModerationErrorMsg{Action: action, Item: item, Err: err}
		}
		return ModerationSuccessMsg{Action: action, Item: item}
	}
}

func SubmitCmd(service Service, kind submission.Kind, d *submission.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		if err := service.Submit(ctx, kind, d); err != nil {
			return SubmitErrorMsg{Kind: kind, DraftID: d.ID, Err: err}
		}
		return SubmitSuccessMsg{Kind: kind, DraftID: d.ID}
	}
}

func LoadUsersCmd(service Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		users, err := service.Users(ctx, query)
		if err != nil {
			return UsersLoadErrorMsg{Query: query, Err: err}
		}
		return UsersLoadSuccessMsg{Query: query, Users: users}
	}
}

// PlayPreviewCmd hands a local preview file to the system opener.
func PlayPreviewCmd(path string, openFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return PlatformErrorMsg{Err: fmt.Errorf("nothing to play")}
		}
		if openFn != nil {
			if err := openFn(path); err == nil {
				return PlatformSuccessMsg{Status: "Opened preview"}
			}
		}
		return PlatformErrorMsg{Err: fmt.Errorf("could not open preview %s", path)}
	}
}

func CopyCmd(text, label string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(text); err == nil {
				return PlatformSuccessMsg{Status: label + " copied to clipboard"}
			}
		}
		return PlatformErrorMsg{Err: fmt.Errorf("could not copy %s to clipboard", label)}
	}
}
