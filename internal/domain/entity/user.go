// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"bytes"
	"encoding/json"
	"maps"

	"accounts/internal/errors"
)

// Field names of a persisted user record.
const (
	FieldEmail        = "email"
	FieldAge          = "age"
	FieldPasswordHash = "password_hash"
	// FieldPassword is the plaintext field of registration and update payloads.
	// Older tables stored the hash under this name.
	FieldPassword = "password"
)

// User is a single account record, keyed by its email in the Table.
type User struct {
	Email        string         // Unique identifier, immutable after creation.
	Age          any            // Opaque value passed through as supplied: a string or a json.Number.
	PasswordHash string         // Salted one-way hash; never leaves the service.
	Attributes   map[string]any // Any other top-level fields supplied by updates, kept verbatim.
}

// nullAge is the Age of a record whose age was explicitly set to null.
type nullAge struct{}

// MarshalJSON writes the explicit null.
func (nullAge) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// NullAge keeps an age set to JSON null apart from an absent age (nil).
var NullAge any = nullAge{}

// age returns the value written for the age field and whether the field is present.
func (u *User) age() (any, bool) {
	switch u.Age {
	case nil:
		return nil, false
	case NullAge:
		return nil, true
	}

	return u.Age, true
}

// Profile is the sanitized, caller-facing view of a User.
type Profile map[string]any

// Public returns the record without any password field, whatever the stored
// table carried.
func (u *User) Public() Profile {
	profile := make(Profile, len(u.Attributes)+2)
	maps.Copy(profile, u.Attributes)
	delete(profile, FieldPassword)
	delete(profile, FieldPasswordHash)
	profile[FieldEmail] = u.Email
	if age, ok := u.age(); ok {
		profile[FieldAge] = age
	}

	return profile
}

// Apply merges patch into the record with a shallow field overwrite.
// The caller strips email and password keys before calling.
func (u *User) Apply(patch map[string]any) {
	for key, value := range patch {
		switch key {
		case FieldEmail, FieldPassword, FieldPasswordHash:
			continue
		case FieldAge:
			u.Age = value
			if value == nil {
				u.Age = NullAge
			}
		default:
			if u.Attributes == nil {
				u.Attributes = make(map[string]any)
			}
			u.Attributes[key] = value
		}
	}
}

// MarshalJSON writes the record as one flat object.
func (u *User) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(u.Attributes)+3)
	maps.Copy(flat, u.Attributes)
	flat[FieldEmail] = u.Email
	if age, ok := u.age(); ok {
		flat[FieldAge] = age
	}
	flat[FieldPasswordHash] = u.PasswordHash

	data, err := json.Marshal(flat)

	return data, errors.WithStack(err)
}

// UnmarshalJSON reads a flat object, keeping numbers as json.Number so they
// are written back exactly as read.
func (u *User) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var flat map[string]any
	if err := decoder.Decode(&flat); err != nil {
		return errors.Wrap(err, "decode user record")
	}
	if flat == nil {
		return errors.New("user record is null")
	}

	record := User{}
	for key, value := range flat {
		switch key {
		case FieldEmail:
			email, ok := value.(string)
			if !ok {
				return errors.Errorf("user record field %q is not a string", key)
			}
			record.Email = email
		case FieldAge:
			record.Age = value
			if value == nil {
				record.Age = NullAge
			}
		case FieldPasswordHash:
			hash, ok := value.(string)
			if !ok {
				return errors.Errorf("user record field %q is not a string", key)
			}
			record.PasswordHash = hash
		default:
			if record.Attributes == nil {
				record.Attributes = make(map[string]any)
			}
			record.Attributes[key] = value
		}
	}

	// Tables written before the hash had its own field kept it under "password".
	if _, hasHash := flat[FieldPasswordHash]; !hasHash {
		if legacy, ok := record.Attributes[FieldPassword].(string); ok {
			record.PasswordHash = legacy
			delete(record.Attributes, FieldPassword)
			if len(record.Attributes) == 0 {
				record.Attributes = nil
			}
		}
	}

	*u = record

	return nil
}
