package sheetapi

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tnthao/solienlac/core/classroom"
	"github.com/tnthao/solienlac/storage/sheet"
)

func (p *Provider) Login(ctx context.Context, username, password string) (*classroom.User, error) {
	raw, err := p.call(ctx, "login", struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var usr classroom.User
	if err := json.Unmarshal(raw, &usr); err != nil {
		return nil, errors.Wrap(err, "parsing login response")
	}
	return &usr, nil
}

func (p *Provider) Register(ctx context.Context, usr classroom.User) (classroom.User, error) {
	row, err := p.create(ctx, sheet.TabUsers, usr)
	if err != nil {
		return classroom.User{}, err
	}
	var stored classroom.User
	if err := sheet.Expand(sheet.TabUsers, row, &stored); err != nil {
		return classroom.User{}, err
	}
	return stored.Stripped(), nil
}

func (p *Provider) GetUserByUsername(ctx context.Context, username string) (*classroom.User, error) {
	rows, err := p.list(ctx, sheet.TabUsers, "username", username)
	if err != nil {
		return nil, err
	}
	usr, err := first[classroom.User](sheet.TabUsers, rows)
	if err != nil || usr == nil {
		return nil, err
	}
	stripped := usr.Stripped()
	return &stripped, nil
}
