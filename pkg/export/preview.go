package export

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

// Preview server port range; the first free port wins.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// PreviewServer serves a rendered map image locally with no-cache headers,
// so a browser tab always shows the latest re-export.
type PreviewServer struct {
	imagePath string
	port      int
	server    *http.Server
}

// NewPreviewServer creates a preview server for the given image file.
func NewPreviewServer(imagePath string, port int) *PreviewServer {
	return &PreviewServer{imagePath: imagePath, port: port}
}

// URL returns the server's local address.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

// Start serves until the process receives SIGINT/SIGTERM, then shuts down
// gracefully.
func (p *PreviewServer) Start() error {
	if _, err := os.Stat(p.imagePath); err != nil {
		return fmt.Errorf("nothing to preview: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", p.indexHandler)
	mux.HandleFunc("/map"+filepath.Ext(p.imagePath), p.imageHandler)
	p.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", p.port),
		Handler: noCacheMiddleware(mux),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	errChan := make(chan error, 1)

	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return p.server.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Stop shuts the server down without waiting for a signal.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

func (p *PreviewServer) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	ext := filepath.Ext(p.imagePath)
	fmt.Fprintf(w, `<!doctype html><title>reposcope preview</title>
<body style="margin:0;background:#1e1f29"><img src="/map%s" style="max-width:100vw"></body>`, ext)
}

func (p *PreviewServer) imageHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, p.imagePath)
}

// noCacheMiddleware disables browser caching so re-exports show up on
// refresh.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort returns the first free TCP port in [start, end].
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}
