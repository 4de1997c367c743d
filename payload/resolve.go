// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xmidt-org/lambdasecret"
)

// Resolved is a secret after its SecretString has been interpreted.  A secret
// whose text looks like a JSON object is structured; any other secret is plain
// and its text is kept exactly as received.
//
// Resolved deliberately has no String method, so that formatting one with
// the fmt package does not print the secret.
type Resolved struct {
	// Secret is the metadata and raw text the value was resolved from.
	Secret Secret

	value      any
	structured bool
}

// Structured tests if the secret text was parsed as a JSON object.
func (r Resolved) Structured() bool {
	return r.structured
}

// Value returns the resolved secret.  This is a map[string]any for structured
// secrets and a string for plain ones.
func (r Resolved) Value() any {
	return r.value
}

// Raw returns the untouched secret text.
func (r Resolved) Raw() string {
	return r.Secret.SecretString
}

// Get extracts a nested value from a structured secret using a gjson path,
// e.g. "database.password".  Strings are returned without quotes and any other
// JSON value is returned as its JSON text.  The second return is false for plain
// secrets and for paths that do not exist.
func (r Resolved) Get(path string) (string, bool) {
	if !r.structured {
		return "", false
	}

	v := gjson.Get(r.Secret.SecretString, path)
	if !v.Exists() {
		return "", false
	}

	if v.Type == gjson.String {
		return v.Str, true
	}

	return v.Raw, true
}

// LooksLikeJSON tests if text's first non-whitespace character is '{'.  This
// is the only test used to decide whether a secret is structured.
func LooksLikeJSON(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "{")
}

// Resolve interprets an already validated Secret.  Text that looks like JSON
// is decoded, and a decoding failure is a *lambdasecret.Error of KindParse.
// Other text is returned unchanged.
func Resolve(s Secret) (Resolved, error) {
	if !LooksLikeJSON(s.SecretString) {
		return Resolved{
			Secret: s,
			value:  s.SecretString,
		}, nil
	}

	var v any
	if err := json.Unmarshal([]byte(s.SecretString), &v); err != nil {
		return Resolved{}, &lambdasecret.Error{
			Kind:    lambdasecret.KindParse,
			Message: "secret string is not valid JSON",
			Err:     err,
		}
	}

	return Resolved{
		Secret:     s,
		value:      v,
		structured: true,
	}, nil
}

// Interpret validates the body of a successful extension response and then
// resolves the secret it carries.  Validation happens first, so a malformed
// response is always a KindShape error no matter what its SecretString holds.
func Interpret(data []byte) (Resolved, error) {
	s, err := Validate(data)
	if err != nil {
		return Resolved{}, err
	}

	return Resolve(s)
}

// As converts a resolved secret into the caller's expected type.
//
// A structured secret is decoded into T with encoding/json, so T may be a
// struct, a map, or any.  A plain secret can only be returned as a string or
// an any holding a string.  Every failure is a *lambdasecret.Error of KindParse.
func As[T any](r Resolved) (T, error) {
	var t T
	if r.structured {
		if err := json.Unmarshal([]byte(r.Secret.SecretString), &t); err != nil {
			return t, &lambdasecret.Error{
				Kind:    lambdasecret.KindParse,
				Message: fmt.Sprintf("secret cannot be decoded into %T", t),
				Err:     err,
			}
		}

		return t, nil
	}

	switch p := any(&t).(type) {
	case *string:
		*p = r.Secret.SecretString

	case *any:
		*p = r.Secret.SecretString

	default:
		return t, &lambdasecret.Error{
			Kind:    lambdasecret.KindParse,
			Message: fmt.Sprintf("plain secret cannot be converted to %T", t),
		}
	}

	return t, nil
}
