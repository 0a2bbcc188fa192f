package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matt-g-everett/rdtools/sequence"
)

// Status describes the frame being shown.
type Status struct {
	Frame   int    `json:"frame"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Visible string `json:"visible,omitempty"`
}

// Api serves rendered frames and playback status over HTTP.
type Api struct {
	staticDir       string
	log             logrus.FieldLogger
	shutdownTimeout time.Duration

	mu     sync.RWMutex
	status Status
}

// NewApi creates an instance of an Api that serves files from staticDir.
func NewApi(staticDir string, log logrus.FieldLogger) *Api {
	a := new(Api)
	a.staticDir = staticDir
	a.log = log
	a.shutdownTimeout = 5 * time.Second
	return a
}

// Attach keeps the status up to date with tl until the returned function is called.
func (a *Api) Attach(tl *sequence.Timeline, objects *sequence.Assignment) (detach func()) {
	return tl.Register(func(frame int) {
		start, end := tl.Range()
		s := Status{Frame: frame, Start: start, End: end}
		if i := objects.VisibleIndex(); i >= 0 {
			s.Visible = objects.At(i).Name()
		}

		a.mu.Lock()
		a.status = s
		a.mu.Unlock()
	})
}

// Status returns the last recorded status.
func (a *Api) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Handler routes /status to the playback status and everything else to the static files.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(a.staticDir)))
	mux.HandleFunc("/status", a.handleStatus)
	return mux
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.Status()); err != nil {
		a.log.WithError(err).Warn("writing status")
	}
}

// Serve listens on addr until ctx is cancelled.
func (a *Api) Serve(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.ServeListener(ctx, l)
}

// ServeListener serves on l until ctx is cancelled, then waits for open
// requests to finish.
func (a *Api) ServeListener(ctx context.Context, l net.Listener) error {
	srv := &http.Server{Handler: a.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.WithError(err).Warn("shutting down")
		}
	}()

	a.log.WithField("addr", l.Addr().String()).Info("Listening...")
	if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
