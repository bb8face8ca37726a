package pgdb

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
)

const uniqueViolation = "23505"

func (p *Provider) Login(ctx context.Context, username, password string) (*classroom.User, error) {
	var usr classroom.User
	err := p.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying user")
	}
	if usr.CheckPassword(password) != nil {
		return nil, nil
	}
	stripped := usr.Stripped()
	return &stripped, nil
}

func (p *Provider) Register(ctx context.Context, usr classroom.User) (classroom.User, error) {
	if usr.ID == "" {
		usr.ID = newID()
	}
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO users (id, username, password, full_name, role, related_id)
		VALUES (:id, :username, :password, :full_name, :role, :related_id)`, usr)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return classroom.User{}, classroom.ErrUsernameExists
		}
		return classroom.User{}, errors.Wrap(err, "inserting user")
	}
	return usr.Stripped(), nil
}

func (p *Provider) GetUserByUsername(ctx context.Context, username string) (*classroom.User, error) {
	var usr classroom.User
	err := p.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying user")
	}
	stripped := usr.Stripped()
	return &stripped, nil
}
