package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tnthao/solienlac/core"
)

// errorHandler keeps transport-level failures in the same envelope the
// action verbs use, so clients only ever parse one response shape. A
// shutdown-class error additionally signals the entrypoint to drain.
func (s *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	if herr, ok := err.(*echo.HTTPError); ok {
		if herr.Internal != nil {
			if inner, ok := herr.Internal.(*echo.HTTPError); ok {
				herr = inner
			}
		}
		code = herr.Code
		if m, ok := herr.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		if !c.Echo().Debug {
			msg = http.StatusText(code)
		}
		if core.IsShutdown(err) {
			s.signalShutdown()
		}
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
		} else {
			_ = c.JSON(code, response{Error: msg})
		}
	}
}
