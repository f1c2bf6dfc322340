// Package models defines the data shapes exchanged between the portal client
// and the backend: the authenticated user, auth payloads, domain records and
// the normalized Result envelope.
package models

import "errors"

// User is the authenticated identity returned by the backend.
type User struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	MembershipID   string  `json:"membershipId,omitempty"`
	Balance        float64 `json:"balance"`
	Points         int64   `json:"points"`
	MembershipTier string  `json:"membershipTier,omitempty"`
	IsActive       bool    `json:"isActive"`
}

// Validate reports whether u carries an identity.
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("user id is missing")
	}
	return nil
}

// Clone returns a copy of u that shares no memory with it. A nil user stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ProfileUpdate carries the editable profile fields. Empty fields are left
// unchanged by the backend.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}
