// Package httpd serves the traffic decomposition demo over HTTP: a
// small JSON API, a websocket for live recomputation and the embedded
// web page.
package httpd

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cwbudde/traffic-vmd/internal/demo"
)

//go:embed web/*
var webFS embed.FS

// Server wires the pipeline engine to HTTP handlers and websocket
// clients.
type Server struct {
	engine   *demo.Engine
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
}

// NewServer creates a server around the given engine.
func NewServer(engine *demo.Engine) *Server {
	return &Server{
		engine: engine,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.handleIndex)
	r.GET("/app.js", s.handleScript)
	r.GET("/healthz", s.handleHealth)
	r.GET("/ws", func(c *gin.Context) { s.handleWS(c.Writer, c.Request) })

	api := r.Group("/api/v1")
	{
		api.GET("/years", s.handleYears)
		api.GET("/dates", s.handleDates)
		api.POST("/view", s.handleView)
	}

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeClients()
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleIndex(c *gin.Context) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "page missing")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleScript(c *gin.Context) {
	script, err := webFS.ReadFile("web/app.js")
	if err != nil {
		c.String(http.StatusInternalServerError, "script missing")
		return
	}
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", script)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
