package ipc

import (
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"playbeat/internal/api"
	"playbeat/internal/rating"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

var sentinels = []error{api.ErrUnknownTrack, rating.ErrInvalidRating}

// call invokes method and restores sentinel errors lost in transport.
func (c *Client) call(method string, req, resp any) error {
	err := c.client.Call("Playbeat."+method, req, resp)
	var serverErr rpc.ServerError
	if !errors.As(err, &serverErr) {
		return err
	}
	for _, sentinel := range sentinels {
		if strings.Contains(string(serverErr), sentinel.Error()) {
			return fmt.Errorf("%w: %s", sentinel, strings.TrimPrefix(string(serverErr), sentinel.Error()+": "))
		}
	}
	return err
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call("Status", Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Shutdown asks the daemon process to exit.
func (c *Client) Shutdown() (*ShutdownResponse, error) {
	var resp ShutdownResponse
	if err := c.call("Shutdown", Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Tracks lists the filtered catalog.
func (c *Client) Tracks(genre, query string) (*api.TrackList, error) {
	var resp api.TrackList
	if err := c.call("Tracks", TracksRequest{Genre: genre, Query: query}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Playlist returns the playlist view.
func (c *Client) Playlist() (*api.Playlist, error) {
	var resp api.Playlist
	if err := c.call("Playlist", Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaylistAdd appends id.
func (c *Client) PlaylistAdd(id int) (*api.PlaylistChange, error) {
	var resp api.PlaylistChange
	if err := c.call("PlaylistAdd", TrackRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaylistRemove drops id.
func (c *Client) PlaylistRemove(id int) (*api.Playlist, error) {
	var resp api.Playlist
	if err := c.call("PlaylistRemove", TrackRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaylistClear empties the playlist.
func (c *Client) PlaylistClear() (*api.Playlist, error) {
	var resp api.Playlist
	if err := c.call("PlaylistClear", Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaylistPrune purges orphaned ids.
func (c *Client) PlaylistPrune() (*api.PruneResult, error) {
	var resp api.PruneResult
	if err := c.call("PlaylistPrune", Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Play starts playback of id on the daemon host.
func (c *Client) Play(id int) (*api.PlayResult, error) {
	var resp api.PlayResult
	if err := c.call("Play", TrackRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Rating reads the committed rating for key.
func (c *Client) Rating(key string) (*api.Rating, error) {
	var resp api.Rating
	if err := c.call("Rating", RatingRequest{Key: key}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Rate commits value for key.
func (c *Client) Rate(key string, value int, keyboard string) (*api.Rating, error) {
	var resp api.Rating
	if err := c.call("Rate", RatingRequest{Key: key, Value: value, Keyboard: keyboard}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ratings lists committed ratings.
func (c *Client) Ratings() ([]api.Rating, error) {
	var resp RatingsResponse
	if err := c.call("Ratings", Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Ratings, nil
}

// Theme returns the applied theme for the caller's system preference.
func (c *Client) Theme(system string) (*api.Theme, error) {
	var resp api.Theme
	if err := c.call("Theme", ThemeRequest{System: system}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ThemeToggle flips the persisted theme.
func (c *Client) ThemeToggle(system string) (*api.Theme, error) {
	var resp api.Theme
	if err := c.call("ThemeToggle", ThemeRequest{System: system}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Quote loads a random quote.
func (c *Client) Quote() (*api.Quote, error) {
	var resp api.Quote
	if err := c.call("Quote", Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Contact submits the contact form.
func (c *Client) Contact(req api.ContactRequest) (*api.ContactResponse, error) {
	var resp api.ContactResponse
	if err := c.call("Contact", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
