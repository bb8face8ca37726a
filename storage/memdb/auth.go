package memdb

import (
	"context"

	"github.com/tnthao/solienlac/core/classroom"
)

func (db *DB) Login(ctx context.Context, username, password string) (*classroom.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, u := range db.data.Users {
		if u.Username == username && u.CheckPassword(password) == nil {
			safe := u.Stripped()
			return &safe, nil
		}
	}
	return nil, nil
}

func (db *DB) Register(ctx context.Context, usr classroom.User) (classroom.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.data.Users {
		if u.Username == usr.Username {
			return classroom.User{}, classroom.ErrUsernameExists
		}
	}
	if usr.ID == "" {
		usr.ID = newID()
	}
	db.data.Users = append(db.data.Users, usr)
	if err := db.save(); err != nil {
		return classroom.User{}, err
	}
	return usr.Stripped(), nil
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*classroom.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, u := range db.data.Users {
		if u.Username == username {
			safe := u.Stripped()
			return &safe, nil
		}
	}
	return nil, nil
}
