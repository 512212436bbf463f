package access

import (
	"context"

	"playbeat/internal/api"
	"playbeat/internal/app"
	"playbeat/internal/ipc"
	"playbeat/internal/player"
	"playbeat/internal/theme"
)

// Access provides site operations regardless of IPC or direct store backing.
type Access interface {
	Status(ctx context.Context) (api.Status, error)
	Tracks(ctx context.Context, genre, query string) (api.TrackList, error)
	Playlist(ctx context.Context) (api.Playlist, error)
	PlaylistAdd(ctx context.Context, id int) (api.PlaylistChange, error)
	PlaylistRemove(ctx context.Context, id int) (api.Playlist, error)
	PlaylistClear(ctx context.Context) (api.Playlist, error)
	PlaylistPrune(ctx context.Context) (api.PruneResult, error)
	Play(ctx context.Context, id int) (api.PlayResult, error)
	Rating(ctx context.Context, key string) (api.Rating, error)
	Rate(ctx context.Context, key string, value int) (api.Rating, error)
	Ratings(ctx context.Context) ([]api.Rating, error)
	Theme(ctx context.Context, system theme.Theme) (api.Theme, error)
	ToggleTheme(ctx context.Context, system theme.Theme) (api.Theme, error)
	Quote(ctx context.Context) (api.Quote, error)
	Contact(ctx context.Context, req api.ContactRequest) (api.ContactResponse, error)
	// WaitPlayback blocks until in-process playback ends. A daemon owns its
	// own player, so remote access returns at once.
	WaitPlayback(ctx context.Context) error
	// Remote reports whether calls go to a running daemon.
	Remote() bool
}

// NewIPCAccess returns an Access backed by daemon IPC.
func NewIPCAccess(client *ipc.Client) Access {
	return &ipcAccess{client: client}
}

// NewLocalAccess returns an Access backed by an in-process app.
func NewLocalAccess(a *app.App) Access {
	return &localAccess{service: api.NewService(a)}
}

type ipcAccess struct {
	client *ipc.Client
}

func (a *ipcAccess) Remote() bool { return true }

func (a *ipcAccess) WaitPlayback(context.Context) error { return nil }

func (a *ipcAccess) Status(context.Context) (api.Status, error) {
	return deref(a.client.Status())
}

func (a *ipcAccess) Tracks(_ context.Context, genre, query string) (api.TrackList, error) {
	return deref(a.client.Tracks(genre, query))
}

func (a *ipcAccess) Playlist(context.Context) (api.Playlist, error) {
	return deref(a.client.Playlist())
}

func (a *ipcAccess) PlaylistAdd(_ context.Context, id int) (api.PlaylistChange, error) {
	return deref(a.client.PlaylistAdd(id))
}

func (a *ipcAccess) PlaylistRemove(_ context.Context, id int) (api.Playlist, error) {
	return deref(a.client.PlaylistRemove(id))
}

func (a *ipcAccess) PlaylistClear(context.Context) (api.Playlist, error) {
	return deref(a.client.PlaylistClear())
}

func (a *ipcAccess) PlaylistPrune(context.Context) (api.PruneResult, error) {
	return deref(a.client.PlaylistPrune())
}

func (a *ipcAccess) Play(_ context.Context, id int) (api.PlayResult, error) {
	return deref(a.client.Play(id))
}

func (a *ipcAccess) Rating(_ context.Context, key string) (api.Rating, error) {
	return deref(a.client.Rating(key))
}

func (a *ipcAccess) Rate(_ context.Context, key string, value int) (api.Rating, error) {
	return deref(a.client.Rate(key, value, ""))
}

func (a *ipcAccess) Ratings(context.Context) ([]api.Rating, error) {
	return a.client.Ratings()
}

func (a *ipcAccess) Theme(_ context.Context, system theme.Theme) (api.Theme, error) {
	return deref(a.client.Theme(string(system)))
}

func (a *ipcAccess) ToggleTheme(_ context.Context, system theme.Theme) (api.Theme, error) {
	return deref(a.client.ThemeToggle(string(system)))
}

func (a *ipcAccess) Quote(context.Context) (api.Quote, error) {
	return deref(a.client.Quote())
}

func (a *ipcAccess) Contact(_ context.Context, req api.ContactRequest) (api.ContactResponse, error) {
	return deref(a.client.Contact(req))
}

func deref[T any](resp *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if resp == nil {
		return zero, nil
	}
	return *resp, nil
}

type localAccess struct {
	service *api.Service
}

func (a *localAccess) Remote() bool { return false }

func (a *localAccess) WaitPlayback(ctx context.Context) error {
	if w, ok := a.service.App().Player.(player.Waiter); ok {
		return w.Wait(ctx)
	}
	return nil
}

func (a *localAccess) Status(ctx context.Context) (api.Status, error) {
	return a.service.Status(ctx), nil
}

func (a *localAccess) Tracks(ctx context.Context, genre, query string) (api.TrackList, error) {
	return a.service.Tracks(ctx, genre, query), nil
}

func (a *localAccess) Playlist(ctx context.Context) (api.Playlist, error) {
	return a.service.Playlist(ctx), nil
}

func (a *localAccess) PlaylistAdd(ctx context.Context, id int) (api.PlaylistChange, error) {
	return a.service.AddToPlaylist(ctx, id)
}

func (a *localAccess) PlaylistRemove(ctx context.Context, id int) (api.Playlist, error) {
	return a.service.RemoveFromPlaylist(ctx, id)
}

func (a *localAccess) PlaylistClear(ctx context.Context) (api.Playlist, error) {
	return a.service.ClearPlaylist(ctx)
}

func (a *localAccess) PlaylistPrune(ctx context.Context) (api.PruneResult, error) {
	return a.service.PrunePlaylist(ctx)
}

func (a *localAccess) Play(ctx context.Context, id int) (api.PlayResult, error) {
	return a.service.Play(ctx, id)
}

func (a *localAccess) Rating(ctx context.Context, key string) (api.Rating, error) {
	return a.service.Rating(ctx, key), nil
}

func (a *localAccess) Rate(ctx context.Context, key string, value int) (api.Rating, error) {
	return a.service.Rate(ctx, key, api.RatingRequest{Value: value})
}

func (a *localAccess) Ratings(ctx context.Context) ([]api.Rating, error) {
	return a.service.Ratings(ctx)
}

func (a *localAccess) Theme(ctx context.Context, system theme.Theme) (api.Theme, error) {
	return a.service.Theme(ctx, system), nil
}

func (a *localAccess) ToggleTheme(ctx context.Context, system theme.Theme) (api.Theme, error) {
	return a.service.ToggleTheme(ctx, system)
}

func (a *localAccess) Quote(ctx context.Context) (api.Quote, error) {
	return a.service.Quote(ctx)
}

func (a *localAccess) Contact(ctx context.Context, req api.ContactRequest) (api.ContactResponse, error) {
	return a.service.Contact(ctx, req), nil
}
