package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const callbackPath = "/oauth2/callback"

// authorize runs the interactive authorization-code flow: a loopback
// server receives the redirect, the user approves in the browser, and the
// returned code is exchanged for a token. Blocks until the callback
// arrives or ctx is cancelled.
func (m *Manager) authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()

	srv, err := startCallbackServer(m.callbackPort, state)
	if err != nil {
		return nil, err
	}
	defer srv.Close()

	// The redirect must target this invocation's listener, so the config
	// copy gets the loopback address.
	authCfg := *cfg
	authCfg.RedirectURL = srv.redirectURL()

	m.promptAuth(authCfg.AuthCodeURL(state, oauth2.AccessTypeOffline))

	code, err := srv.wait(ctx)
	if err != nil {
		return nil, err
	}

	tok, err := authCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}
	return tok, nil
}

type callbackResult struct {
	code string
	err  error
}

type callbackServer struct {
	srv  *http.Server
	addr string
	ch   chan callbackResult
}

// startCallbackServer listens on 127.0.0.1 (port 0 picks an ephemeral
// port) and accepts exactly one authorization redirect. The state
// parameter must round-trip unchanged.
func startCallbackServer(port int, state string) (*callbackServer, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	s := &callbackServer{
		addr: ln.Addr().String(),
		ch:   make(chan callbackResult, 1),
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get(callbackPath, s.handleCallback(state))

	s.srv = &http.Server{Handler: router}
	go s.srv.Serve(ln)

	return s, nil
}

func (s *callbackServer) handleCallback(state string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if msg := q.Get("error"); msg != "" {
			http.Error(w, "authorization failed", http.StatusBadRequest)
			s.deliver(callbackResult{err: fmt.Errorf("authorization denied: %s", msg)})
			return
		}
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			s.deliver(callbackResult{err: errors.New("state mismatch in oauth callback")})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			s.deliver(callbackResult{err: errors.New("oauth callback missing code")})
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Authorization complete. You can close this window.")
		s.deliver(callbackResult{code: code})
	}
}

// deliver hands over the first result only; a repeated or stray request
// must not block the handler.
func (s *callbackServer) deliver(res callbackResult) {
	select {
	case s.ch <- res:
	default:
	}
}

func (s *callbackServer) redirectURL() string {
	return fmt.Sprintf("http://%s%s", s.addr, callbackPath)
}

func (s *callbackServer) wait(ctx context.Context) (string, error) {
	select {
	case res := <-s.ch:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *callbackServer) Close() {
	s.srv.Close()
}
