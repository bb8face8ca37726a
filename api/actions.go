package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core"
	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

// request is the wire envelope. Unused payload attributes are simply
// absent; each verb reads the ones it needs.
type request struct {
	Action  string  `json:"action"`
	Payload payload `json:"payload"`
}

type payload struct {
	Tab       string      `json:"tab,omitempty"`
	Field     string      `json:"field,omitempty"`
	Value     interface{} `json:"value,omitempty"`
	ID        string      `json:"id,omitempty"`
	Data      sheet.Row   `json:"data,omitempty"`
	Username  string      `json:"username,omitempty"`
	Password  string      `json:"password,omitempty"`
	ClassID   string      `json:"classId,omitempty"`
	Period    string      `json:"period,omitempty"`
	StartDate string      `json:"startDate,omitempty"`
	EndDate   string      `json:"endDate,omitempty"`
}

type response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// dispatch routes one action verb. Application-level failures travel in
// the envelope with HTTP 200; only transport problems surface as non-200.
func (s *Server) dispatch(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	ctx := c.Request().Context()
	pl := req.Payload

	var (
		data interface{}
		err  error
	)
	switch req.Action {
	case "getAll":
		data, err = s.store.Rows(ctx, pl.Tab)
	case "list":
		data, err = s.list(c, pl)
	case "create":
		data, err = s.store.Append(ctx, pl.Tab, pl.Data)
	case "update":
		data, err = s.store.Patch(ctx, pl.Tab, pl.ID, pl.Data)
	case "delete":
		err = s.store.Remove(ctx, pl.Tab, pl.ID)
	case "login":
		data, err = s.store.Login(ctx, pl.Username, pl.Password)
	case "getReport":
		data, err = s.store.GetReport(ctx, pl.ClassID, classroom.Period(pl.Period), pl.StartDate, pl.EndDate)
	default:
		err = errors.Errorf("unknown action %q", req.Action)
	}
	if err != nil {
		if core.IsShutdown(err) {
			return err
		}
		s.log.Warn("action failed", "action", req.Action, "tab", pl.Tab, "err", err)
		return c.JSON(http.StatusOK, response{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, response{OK: true, Data: data})
}

// list filters a tab's rows on one column. An empty field means the whole
// tab. Cells are compared by their string form, matching how the wire
// treats every cell as text.
func (s *Server) list(c echo.Context, pl payload) ([]sheet.Row, error) {
	rows, err := s.store.Rows(c.Request().Context(), pl.Tab)
	if err != nil {
		return nil, err
	}
	if pl.Field == "" {
		return rows, nil
	}
	want := fmt.Sprint(pl.Value)
	out := make([]sheet.Row, 0, len(rows))
	for _, row := range rows {
		if cell, ok := row[pl.Field]; ok && fmt.Sprint(cell) == want {
			out = append(out, row)
		}
	}
	return out, nil
}
