// Package share exposes the local HTTP server through a zrok public share.
package share

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"

	zrokEnvironment "github.com/openziti/zrok/environment"
	zrok "github.com/openziti/zrok/sdk/golang/sdk"
)

type Options struct {
	// Target is the local address the share proxies to, e.g. http://localhost:8080.
	Target       string
	UseReserved  bool
	ReservedName string
}

type Share struct {
	Endpoint string

	listener net.Listener
	release  func() error
	closed   atomic.Bool
	log      *slog.Logger
}

// Open creates an ephemeral public share, or attaches to the reserved one,
// and starts listening on it.
func Open(opts Options, logger *slog.Logger) (*Share, error) {
	root, err := zrokEnvironment.LoadRoot()
	if err != nil {
		return nil, fmt.Errorf("load zrok environment: %w", err)
	}

	s := &Share{
		log:     logger,
		release: func() error { return nil },
	}

	token := opts.ReservedName
	s.Endpoint = reservedEndpoint(token)

	if !opts.UseReserved || opts.ReservedName == "" {
		shr, err := zrok.CreateShare(root, shareRequest(opts.Target))
		if err != nil {
			return nil, fmt.Errorf("create share: %w", err)
		}
		s.release = func() error { return zrok.DeleteShare(root, shr) }

		token = shr.Token
		if len(shr.FrontendEndpoints) > 0 {
			s.Endpoint = shr.FrontendEndpoints[0]
		}
	}

	listener, err := zrok.NewListener(token, root)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("listen on share %s: %w", token, err), s.release())
	}
	s.listener = listener

	logger.Info("share created", "frontend_endpoint", s.Endpoint)
	return s, nil
}

func shareRequest(target string) *zrok.ShareRequest {
	return &zrok.ShareRequest{
		BackendMode: zrok.ProxyBackendMode,
		ShareMode:   zrok.PublicShareMode,
		Frontends:   []string{"public"},
		Target:      target,
	}
}

func reservedEndpoint(name string) string {
	return fmt.Sprintf("https://%s.share.zrok.io", name)
}

// Serve blocks serving h on the share until the listener is closed.
func (s *Share) Serve(h http.Handler) error {
	err := http.Serve(s.listener, h)
	if s.closed.Load() || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Close stops the listener and deletes an ephemeral share.
func (s *Share) Close() error {
	s.closed.Store(true)
	err := s.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	if rerr := s.release(); rerr != nil {
		s.log.Error("failed to delete share", "error", rerr)
		err = errors.Join(err, rerr)
	}
	return err
}
