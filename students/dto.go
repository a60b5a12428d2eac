// Package students, as part of the student records module.
// This file, `dto.go`, defines the request and response bodies of the
// `/students` API and the rules for turning a request body into a record.
package students

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/store"
)

// StudentPayload is a decoded create/update body.
// The id is kept raw because clients send it either as a JSON number or as a
// JSON string (the web form posts `"id": "12"`); it's parsed by Student.
type StudentPayload struct {
	RawID json.RawMessage
	Name  string
	Level string
}

// StudentRequest documents the accepted body; `id` may also be a numeric string.
type StudentRequest struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Ann"`
	Level string `json:"level" example:"A1"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string `json:"message" example:"student deleted"`
	ID      int64  `json:"id" example:"1"`
}

// DecodePayload parses a request body. The body must be a JSON object;
// anything else is a BadRequestError. Field values are not validated here.
func DecodePayload(body []byte) (StudentPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return StudentPayload{}, apperror.NewBadRequestError("request body must be a JSON object", err)
	}
	if fields == nil {
		return StudentPayload{}, apperror.NewBadRequestError("request body must be a JSON object", nil)
	}

	return StudentPayload{
		RawID: fields["id"],
		Name:  textField(fields["name"]),
		Level: textField(fields["level"]),
	}, nil
}

// textField renders a JSON value as text: strings are unquoted, a missing
// field or null is empty, any other value keeps its JSON spelling.
func textField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// HasID reports whether the body carried a non-null id.
func (p StudentPayload) HasID() bool {
	raw := bytes.TrimSpace(p.RawID)
	return len(raw) > 0 && string(raw) != "null"
}

// ParseID parses the id as a base-10 int64. It accepts `12` and `"12"`;
// fractions, exponents, non-numeric strings, null and a missing id are InvalidIDErrors.
func (p StudentPayload) ParseID() (int64, error) {
	if !p.HasID() {
		return 0, apperror.NewInvalidIDError("id is required and must be an integer", nil)
	}

	text := string(bytes.TrimSpace(p.RawID))
	if text[0] == '"' {
		if err := json.Unmarshal(p.RawID, &text); err != nil {
			return 0, apperror.NewInvalidIDError("id must be an integer", err)
		}
	}

	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, apperror.NewInvalidIDError(fmt.Sprintf("id %q is not a valid integer", text), err)
	}
	return id, nil
}

// Student converts the payload into a record.
func (p StudentPayload) Student() (store.Student, error) {
	id, err := p.ParseID()
	if err != nil {
		return store.Student{}, err
	}
	return store.Student{ID: id, Name: p.Name, Level: p.Level}, nil
}

// ParsePathID parses the `{id}` URL parameter.
func ParsePathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewInvalidIDError(fmt.Sprintf("id %q is not a valid integer", raw), err)
	}
	return id, nil
}
