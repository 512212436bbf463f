package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"playbeat/internal/api"
	"playbeat/internal/daemon"
	"playbeat/internal/logging"
	"playbeat/internal/theme"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, svc: d.Service(), logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Playbeat", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				logging.WarnWithContext(s.logger, "accept failed", "ipc_accept_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		logging.WarnWithContext(s.logger, "failed to remove socket", "ipc_socket_cleanup_failed",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually or rerun playbeat stop"))
	}
}

type service struct {
	daemon *daemon.Daemon
	svc    *api.Service
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

// callContext scopes one RPC with its own correlation id.
func (s *service) callContext() context.Context {
	return logging.WithRequestID(s.ctx, logging.NewRequestID())
}

func (s *service) Status(_ Empty, resp *StatusResponse) error {
	*resp = s.daemon.Status(s.callContext())
	return nil
}

func (s *service) Shutdown(_ Empty, resp *ShutdownResponse) error {
	s.log().Info("shutdown requested via IPC",
		logging.String(logging.FieldEventType, "daemon_shutdown_requested"))
	s.daemon.RequestShutdown()
	resp.Accepted = true
	return nil
}

func (s *service) Tracks(req TracksRequest, resp *api.TrackList) error {
	*resp = s.svc.Tracks(s.callContext(), req.Genre, req.Query)
	return nil
}

func (s *service) Playlist(_ Empty, resp *api.Playlist) error {
	*resp = s.svc.Playlist(s.callContext())
	return nil
}

func (s *service) PlaylistAdd(req TrackRequest, resp *api.PlaylistChange) error {
	change, err := s.svc.AddToPlaylist(s.callContext(), req.ID)
	if err != nil {
		return err
	}
	*resp = change
	return nil
}

func (s *service) PlaylistRemove(req TrackRequest, resp *api.Playlist) error {
	pl, err := s.svc.RemoveFromPlaylist(s.callContext(), req.ID)
	if err != nil {
		return err
	}
	*resp = pl
	return nil
}

func (s *service) PlaylistClear(_ Empty, resp *api.Playlist) error {
	pl, err := s.svc.ClearPlaylist(s.callContext())
	if err != nil {
		return err
	}
	*resp = pl
	return nil
}

func (s *service) PlaylistPrune(_ Empty, resp *api.PruneResult) error {
	res, err := s.svc.PrunePlaylist(s.callContext())
	if err != nil {
		return err
	}
	*resp = res
	return nil
}

func (s *service) Play(req TrackRequest, resp *api.PlayResult) error {
	res, err := s.svc.Play(s.callContext(), req.ID)
	if err != nil {
		return err
	}
	*resp = res
	return nil
}

func (s *service) Rating(req RatingRequest, resp *api.Rating) error {
	*resp = s.svc.Rating(s.callContext(), req.Key)
	return nil
}

func (s *service) Rate(req RatingRequest, resp *api.Rating) error {
	res, err := s.svc.Rate(s.callContext(), req.Key, api.RatingRequest{Value: req.Value, Key: req.Keyboard})
	if err != nil {
		return err
	}
	*resp = res
	return nil
}

func (s *service) Ratings(_ Empty, resp *RatingsResponse) error {
	all, err := s.svc.Ratings(s.callContext())
	if err != nil {
		return err
	}
	resp.Ratings = all
	return nil
}

func (s *service) Theme(req ThemeRequest, resp *api.Theme) error {
	*resp = s.svc.Theme(s.callContext(), parseSystem(req.System))
	return nil
}

func (s *service) ThemeToggle(req ThemeRequest, resp *api.Theme) error {
	res, err := s.svc.ToggleTheme(s.callContext(), parseSystem(req.System))
	if err != nil {
		return err
	}
	*resp = res
	return nil
}

func (s *service) Quote(_ Empty, resp *api.Quote) error {
	q, err := s.svc.Quote(s.callContext())
	if err != nil {
		return err
	}
	*resp = q
	return nil
}

func (s *service) Contact(req api.ContactRequest, resp *api.ContactResponse) error {
	*resp = s.svc.Contact(s.callContext(), req)
	return nil
}

func parseSystem(value string) theme.Theme {
	if t, ok := theme.Parse(value); ok {
		return t
	}
	return theme.Light
}
