package adapters

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"wheelgen/internal/utils"
)

const (
	callbackAddr = "localhost:8080"
	redirectURI  = "http://" + callbackAddr + "/callback"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// BaseAdapter provides common functionality for platform adapters
type BaseAdapter struct {
	authenticated bool
	platformName  string
	state         string
	logger        *log.Logger
}

// NewBaseAdapter creates a new BaseAdapter
func NewBaseAdapter(platformName string, logger *log.Logger) (BaseAdapter, error) {
	if logger == nil {
		logger = log.Default()
	}
	state, err := utils.GenerateState()
	if err != nil {
		return BaseAdapter{}, err
	}
	return BaseAdapter{
		platformName: platformName,
		state:        state,
		logger:       logger.With("platform", platformName),
	}, nil
}

// SetAuthenticated updates the authentication status
func (b *BaseAdapter) SetAuthenticated(status bool) {
	b.authenticated = status
}

// IsAuthenticated checks if the adapter is authenticated
func (b *BaseAdapter) IsAuthenticated() bool {
	return b.authenticated
}

// CheckAuth ensures the adapter is authenticated before making API calls
func (b *BaseAdapter) CheckAuth() error {
	if !b.IsAuthenticated() {
		return fmt.Errorf("%w with %s, call Authenticate() first", ErrNotAuthenticated, b.platformName)
	}
	return nil
}

// PlatformName returns the name of the platform
func (b *BaseAdapter) PlatformName() string {
	return b.platformName
}

// awaitCallback serves the OAuth redirect on callbackAddr until exchange
// has turned one callback into a client or ctx ends. The server is shut
// down before returning.
func (b *BaseAdapter) awaitCallback(ctx context.Context, authURL string, exchange func(r *http.Request) error) error {
	done := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if st := r.FormValue("state"); st != b.state {
			b.logger.Warn("oauth state mismatch", "got", st)
			http.NotFound(w, r)
			return
		}
		if err := exchange(r); err != nil {
			http.Error(w, "Couldn't get token", http.StatusForbidden)
			select {
			case done <- err:
			default:
			}
			return
		}
		fmt.Fprintf(w, "Login Completed! You can now close this window.")
		select {
		case done <- nil:
		default:
		}
	})

	ln, err := net.Listen("tcp", callbackAddr)
	if err != nil {
		return fmt.Errorf("starting oauth callback server: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Error("oauth callback server stopped", "err", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Please log in to %s by visiting the following page in your browser: %s\n", b.platformName, authURL)
	if err := utils.OpenBrowser(authURL); err != nil {
		b.logger.Debug("browser not opened", "err", err)
	}

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s authentication failed: %w", b.platformName, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
