// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"github.com/tidwall/gjson"
	"github.com/xmidt-org/lambdasecret"
)

// ShapeMessage is the text of every KindShape error produced by this package.
const ShapeMessage = "invalid secret response format"

// Field names of the extension's response document.
const (
	FieldARN          = "ARN"
	FieldName         = "Name"
	FieldSecretString = "SecretString"
	FieldVersionID    = "VersionId"
)

// Secret is the metadata and raw secret text returned by a successful lookup.
type Secret struct {
	ARN          string `json:"ARN"`
	Name         string `json:"Name"`
	SecretString string `json:"SecretString"`

	// VersionID is optional, and is empty if the response did not carry one.
	VersionID string `json:"VersionId,omitempty"`
}

// required are the fields that must be present and hold strings.
var required = [...]string{FieldARN, FieldName, FieldSecretString}

// Validate checks that data is a JSON object whose ARN, Name, and SecretString
// fields are strings and whose VersionId, if present, is a string.  Nothing
// about the content of SecretString is examined.
//
// Any failure is a *lambdasecret.Error of KindShape.
func Validate(data []byte) (Secret, error) {
	if !gjson.ValidBytes(data) {
		return Secret{}, shapeError()
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Secret{}, shapeError()
	}

	var values [len(required)]string
	for i, field := range required {
		v := root.Get(field)
		if v.Type != gjson.String {
			return Secret{}, shapeError()
		}

		values[i] = v.Str
	}

	s := Secret{
		ARN:          values[0],
		Name:         values[1],
		SecretString: values[2],
	}

	// a null VersionId is not the same as a missing one
	if v := root.Get(FieldVersionID); v.Exists() {
		if v.Type != gjson.String {
			return Secret{}, shapeError()
		}

		s.VersionID = v.Str
	}

	return s, nil
}

func shapeError() *lambdasecret.Error {
	return &lambdasecret.Error{
		Kind:    lambdasecret.KindShape,
		Message: ShapeMessage,
	}
}
