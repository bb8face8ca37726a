package pgdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

type Provider struct {
	db *sqlx.DB
}

var _ classroom.DataProvider = (*Provider)(nil)

func NewProvider(db *sqlx.DB) *Provider {
	return &Provider{db: db}
}

func newID() string { return uuid.NewString() }

// jsonList maps a []string attribute onto a jsonb column.
type jsonList []string

func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		l = jsonList{}
	}
	return json.Marshal(l)
}

func (l *jsonList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("cannot scan %T into jsonList", src)
	}
	return json.Unmarshal(raw, l)
}

// inTx runs fn in a transaction, rolling back on error.
func (p *Provider) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// affected maps a zero-row UPDATE or DELETE onto the contract's sentinel.
func affected(res sql.Result, err error, op string) error {
	if err != nil {
		return errors.Wrap(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return classroom.ErrNotFound
	}
	return nil
}
