package access

import (
	"fmt"

	"playbeat/internal/app"
	"playbeat/internal/ipc"
)

// Session represents an access handle and its cleanup function.
type Session struct {
	Access Access
	close  func() error
}

// Close releases resources associated with the session.
func (s Session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenWithFallback tries IPC-backed access first, then falls back to an
// in-process app over the store.
func OpenWithFallback(
	dial func() (*ipc.Client, error),
	openApp func() (*app.App, error),
) (Session, error) {
	if dial != nil {
		if client, err := dial(); err == nil {
			return Session{
				Access: NewIPCAccess(client),
				close:  client.Close,
			}, nil
		}
	}

	if openApp == nil {
		return Session{}, fmt.Errorf("open site state: no app opener configured")
	}
	a, err := openApp()
	if err != nil {
		return Session{}, fmt.Errorf("open site state: %w", err)
	}
	return Session{
		Access: NewLocalAccess(a),
		close:  a.Close,
	}, nil
}
