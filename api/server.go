// Package api exposes the portal's single-endpoint action API: every call
// is a POST of {action, payload} and every reply is {ok, data, error}.
// The server speaks in tabs and rows; typed semantics live behind the
// TabStore it is handed.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

// TabStore is the row-level persistence surface the action verbs dispatch
// onto. The memdb backend implements it next to the typed contract.
type TabStore interface {
	Rows(ctx context.Context, tab string) ([]sheet.Row, error)
	Append(ctx context.Context, tab string, row sheet.Row) (sheet.Row, error)
	Patch(ctx context.Context, tab, id string, patch sheet.Row) (sheet.Row, error)
	Remove(ctx context.Context, tab, id string) error
	Login(ctx context.Context, username, password string) (*classroom.User, error)
	GetReport(ctx context.Context, classID string, period classroom.Period, startDate, endDate string) (classroom.Report, error)
}

type Options struct {
	Addr           string
	Store          TabStore
	Logger         core.Logger
	Debug          bool
	DisableReqLogs bool
}

type Server struct {
	addr     string
	router   *echo.Echo
	store    TabStore
	log      core.Logger
	shutdown chan struct{}
}

func NewServer(opts Options) *Server {
	s := &Server{
		addr:     opts.Addr,
		router:   echo.New(),
		store:    opts.Store,
		log:      opts.Logger,
		shutdown: make(chan struct{}, 1),
	}
	s.router.Debug = opts.Debug
	s.router.HideBanner = true
	s.router.HTTPErrorHandler = s.errorHandler
	if !opts.Debug {
		s.router.Logger.SetLevel(log.WARN)
	}

	s.router.Pre(middleware.RemoveTrailingSlash())
	if !opts.DisableReqLogs {
		s.router.Use(middleware.Logger())
	}
	s.router.Use(middleware.Recover())

	s.router.GET("/healthz", s.health)
	s.router.POST("/api", s.dispatch)
	return s
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) Start() error {
	return s.router.Start(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.router.Shutdown(ctx)
}

// ShutdownSignal fires when a request failed with an integrity error the
// process should not outlive; the entrypoint drains and exits on it.
func (s *Server) ShutdownSignal() <-chan struct{} {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default:
	}
}

// ServeHTTP lets tests drive the router without binding a port.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
