package auth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"time"
)

// callbackResult holds the OAuth2 callback parameters.
type callbackResult struct {
	Code  string
	State string
	Error string
}

// startCallbackServer starts a temporary HTTP server on the loopback
// interface to receive the OAuth2 callback. Returns a channel for the
// result, the callback URL, and a shutdown function. The server serves
// exactly one callback.
func startCallbackServer(ctx context.Context, port int) (resultChan chan callbackResult, addr string, shutdown func()) {
	resultChan = make(chan callbackResult, 1)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		// Requested port unavailable, take any free one
		listener, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			go func() {
				resultChan <- callbackResult{Error: fmt.Sprintf("failed to start callback server: %v", err)}
			}()
			return resultChan, "", func() {}
		}
	}

	actualPort := listener.Addr().(*net.TCPAddr).Port
	addr = fmt.Sprintf("http://localhost:%d/callback", actualPort)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		if code == "" {
			errorMsg := r.URL.Query().Get("error")
			if errorMsg == "" {
				errorMsg = "missing authorization code"
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "<html><body><h1>Authentication failed</h1><p>%s</p></body></html>",
				html.EscapeString(errorMsg))
			resultChan <- callbackResult{Error: errorMsg}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You can close this window and return to the terminal.</p></body></html>")
		resultChan <- callbackResult{Code: code, State: state}
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = server.Serve(listener)
	}()

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	shutdown = func() {
		_ = server.Close()
	}

	return resultChan, addr, shutdown
}
