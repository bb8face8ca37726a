// Package sheetapi implements the classroom.DataProvider contract over
// the portal's remote action API: every operation becomes one or more
// POSTs of {action, payload} against a single endpoint, with rows encoded
// per the sheet wire model. The backend is treated as dumb row storage;
// anything smarter than a one-column filter happens client-side.
package sheetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

type Provider struct {
	url string
	hc  *http.Client
}

var _ classroom.DataProvider = (*Provider)(nil)

func NewProvider(url string, opts ...Option) *Provider {
	p := &Provider{
		url: url,
		hc:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type Option func(*Provider)

// WithHTTPClient overrides the default client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Provider) { p.hc = hc }
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// call performs one action round trip and returns the raw data member.
// A server-side failure (ok false) comes back as an error carrying the
// server's message.
func (p *Provider) call(ctx context.Context, action string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(struct {
		Action  string      `json:"action"`
		Payload interface{} `json:"payload"`
	}{action, payload})
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s request", action)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "building %s request", action)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "calling %s", action)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s response", action)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrapf(err, "parsing %s response (status %d)", action, resp.StatusCode)
	}
	if !env.OK {
		msg := env.Error
		if msg == "" {
			msg = "api error"
		}
		// Re-surface the duplicate-username sentinel so callers can match it.
		if strings.Contains(msg, classroom.ErrUsernameExists.Error()) {
			return nil, classroom.ErrUsernameExists
		}
		if strings.Contains(msg, classroom.ErrNotFound.Error()) {
			return nil, classroom.ErrNotFound
		}
		return nil, errors.Errorf("%s: %s", action, msg)
	}
	return env.Data, nil
}

// tabPayload covers the row verbs; zero-valued members are omitted.
type tabPayload struct {
	Tab   string    `json:"tab"`
	Field string    `json:"field,omitempty"`
	Value string    `json:"value,omitempty"`
	ID    string    `json:"id,omitempty"`
	Data  sheet.Row `json:"data,omitempty"`
}

func (p *Provider) getAll(ctx context.Context, tab string) ([]sheet.Row, error) {
	return p.rows(ctx, "getAll", tabPayload{Tab: tab})
}

func (p *Provider) list(ctx context.Context, tab, field, value string) ([]sheet.Row, error) {
	return p.rows(ctx, "list", tabPayload{Tab: tab, Field: field, Value: value})
}

func (p *Provider) rows(ctx context.Context, action string, pl tabPayload) ([]sheet.Row, error) {
	raw, err := p.call(ctx, action, pl)
	if err != nil {
		return nil, err
	}
	var rows []sheet.Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errors.Wrapf(err, "parsing %s rows", pl.Tab)
	}
	return rows, nil
}

// create flattens the entity, posts it and returns the stored row, whose
// id the server fills in when the client sent none.
func (p *Provider) create(ctx context.Context, tab string, entity interface{}) (sheet.Row, error) {
	row, err := sheet.Flatten(tab, entity)
	if err != nil {
		return nil, err
	}
	return p.createRow(ctx, tab, row)
}

func (p *Provider) createRow(ctx context.Context, tab string, row sheet.Row) (sheet.Row, error) {
	raw, err := p.call(ctx, "create", tabPayload{Tab: tab, Data: row})
	if err != nil {
		return nil, err
	}
	var stored sheet.Row
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, errors.Wrapf(err, "parsing stored %s row", tab)
	}
	return stored, nil
}

func (p *Provider) update(ctx context.Context, tab, id string, entity interface{}) error {
	row, err := sheet.Flatten(tab, entity)
	if err != nil {
		return err
	}
	return p.updateRow(ctx, tab, id, row)
}

func (p *Provider) updateRow(ctx context.Context, tab, id string, row sheet.Row) error {
	_, err := p.call(ctx, "update", tabPayload{Tab: tab, ID: id, Data: row})
	return err
}

func (p *Provider) delete(ctx context.Context, tab, id string) error {
	_, err := p.call(ctx, "delete", tabPayload{Tab: tab, ID: id})
	return err
}

// expand decodes wire rows into typed entities.
func expand[T any](tab string, rows []sheet.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := sheet.Expand(tab, row, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// first decodes the first row, or nil when the result set is empty.
func first[T any](tab string, rows []sheet.Row) (*T, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	var item T
	if err := sheet.Expand(tab, rows[0], &item); err != nil {
		return nil, err
	}
	return &item, nil
}
