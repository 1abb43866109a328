package user

import (
	"errors"
	"fmt"
)

// User is a registered account. Credentials are kept in plaintext; the
// directory offers no real security.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
}

// Record is the stored shape of a User, used for the users collection and
// for the currentUser session copy.
type Record struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewRecord(u *User) Record {
	return Record{ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password}
}

func (r Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("invalid id %d", r.ID)
	}
	if r.Email == "" {
		return errors.New("missing email")
	}
	return nil
}

func (r Record) User() *User {
	return &User{ID: r.ID, Name: r.Name, Email: r.Email, Password: r.Password}
}

func (u *User) clone() *User {
	c := *u
	return &c
}
