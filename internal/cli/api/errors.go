package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Detail is the error payload extracted from a failed response:
// either ValidationErrors or MessageDetail. A nil Detail means the body had none.
type Detail interface {
	fmt.Stringer
	isDetail()
}

// ValidationError is one entry of a structured validation failure.
type ValidationError struct {
	Loc []string
	Msg string
}

func (v ValidationError) String() string {
	if len(v.Loc) == 0 {
		return v.Msg
	}
	return strings.Join(v.Loc, ".") + ": " + v.Msg
}

// ValidationErrors renders as "field.path: msg" lines.
type ValidationErrors []ValidationError

func (ValidationErrors) isDetail() {}

func (v ValidationErrors) String() string {
	lines := make([]string, len(v))
	for i, e := range v {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// MessageDetail is a plain message from `detail` or `message`.
type MessageDetail string

func (MessageDetail) isDetail()        {}
func (m MessageDetail) String() string { return string(m) }

// RequestError is returned for any non-2xx response.
type RequestError struct {
	Status int
	// Data is the normalized response body (may be nil).
	Data   json.RawMessage
	Detail Detail
}

func (e *RequestError) Error() string {
	if e.Detail != nil {
		return e.Detail.String()
	}
	return fmt.Sprintf("Request failed (%d)", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

func newRequestError(status int, data json.RawMessage) *RequestError {
	return &RequestError{Status: status, Data: data, Detail: parseDetail(data)}
}

// parseDetail picks the first truthy of `detail` and `message`.
func parseDetail(data json.RawMessage) Detail {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	for _, key := range []string{"detail", "message"} {
		v, ok := obj[key]
		if !ok || !truthy(v) {
			continue
		}
		return detailFrom(v)
	}
	return nil
}

func detailFrom(v json.RawMessage) Detail {
	switch v[0] {
	case '"':
		var s string
		_ = json.Unmarshal(v, &s)
		return MessageDetail(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return MessageDetail(compact(v))
		}
		// пустой список не даёт текста: Error() вернёт "Request failed (N)", а не пустую строку
		if len(items) == 0 {
			return nil
		}
		out := make(ValidationErrors, 0, len(items))
		for _, it := range items {
			out = append(out, validationErrorFrom(it))
		}
		return out
	default:
		return MessageDetail(compact(v))
	}
}

func validationErrorFrom(raw json.RawMessage) ValidationError {
	var item struct {
		Loc []json.RawMessage `json:"loc"`
		Msg json.RawMessage   `json:"msg"`
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return ValidationError{Msg: scalar(raw)}
	}
	ve := ValidationError{Msg: scalar(item.Msg)}
	for _, l := range item.Loc {
		ve.Loc = append(ve.Loc, scalar(l))
	}
	return ve
}

// scalar renders a JSON value without quotes for strings.
func scalar(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return compact(v)
}

func compact(v json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return string(v)
	}
	return buf.String()
}

// truthy mirrors the loose checks the API clients use: null, "", false and 0 count as absent.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", `""`, "false", "0":
		return false
	}
	return true
}
