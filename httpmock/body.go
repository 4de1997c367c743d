// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package httpmock

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

// EmptyBody is a simpler way to invoke BodyBytes(nil)
func EmptyBody() io.ReadCloser {
	return BodyBytes(nil)
}

// BodyString is syntactic sugar for creating a response body from a string
func BodyString(b string) io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(b))
}

// BodyBytes is syntactic sugar for creating a response body from a byte slice
func BodyBytes(b []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewBuffer(b))
}

// NewResponse creates a response to the given request with a text body.
func NewResponse(request *http.Request, status int, body string) *http.Response {
	return &http.Response{
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": {"text/plain"}},
		Body:          BodyString(body),
		ContentLength: int64(len(body)),
		Request:       request,
	}
}

// Secret is the JSON document returned by the extension for a successful
// lookup.  VersionId is omitted when empty.
type Secret struct {
	ARN          string `json:"ARN"`
	Name         string `json:"Name"`
	SecretString string `json:"SecretString"`
	VersionID    string `json:"VersionId,omitempty"`
}

// JSON marshals this Secret.  It panics if marshaling fails, which cannot
// happen for this type.
func (s Secret) JSON() string {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}

	return string(b)
}
