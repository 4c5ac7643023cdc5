package entity

import (
	"bytes"
	"encoding/json"

	"accounts/internal/errors"
)

// Table is the full set of user records keyed by email. It is the unit of
// persistence: stores always read and write it whole.
type Table map[string]*User

// Get returns the record stored under email.
func (t Table) Get(email string) (*User, bool) {
	user, ok := t[email]

	return user, ok && user != nil
}

// Has reports whether email is registered.
func (t Table) Has(email string) bool {
	_, ok := t.Get(email)

	return ok
}

// Put inserts or replaces the record under its own email.
func (t Table) Put(user *User) {
	t[user.Email] = user
}

// Remove deletes the record stored under email.
func (t Table) Remove(email string) {
	delete(t, email)
}

// DecodeTable parses a persisted table. Records missing their email field
// take it from their key.
func DecodeTable(data []byte) (Table, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var table Table
	if err := decoder.Decode(&table); err != nil {
		return nil, errors.Wrap(err, "decode user table")
	}
	if decoder.More() {
		return nil, errors.New("trailing data after user table")
	}
	if table == nil {
		table = Table{}
	}

	for email, user := range table {
		if user == nil {
			return nil, errors.Errorf("user table entry %q is null", email)
		}
		if user.Email == "" {
			user.Email = email
		}
	}

	return table, nil
}

// EncodeTable serializes the table. encoding/json sorts object keys, so the
// same table always encodes to the same bytes.
func EncodeTable(table Table) ([]byte, error) {
	if table == nil {
		table = Table{}
	}

	data, err := json.Marshal(table)
	if err != nil {
		return nil, errors.Wrap(err, "encode user table")
	}

	return data, nil
}
