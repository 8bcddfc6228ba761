package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxBodyLen = 200

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindRateLimited  Kind = "rate_limited"
	KindUnauthorized Kind = "unauthorized"
	KindUnreachable  Kind = "unreachable"
	KindParse        Kind = "parse_error"
	KindUpstream     Kind = "upstream_error"
)

// Error describes a failed call to a third-party API.
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(provider string, kind Kind, err error) *Error {
	return &Error{Provider: provider, Kind: kind, Err: err}
}

// FromStatus classifies a non-2xx HTTP response.
func FromStatus(provider string, status int, body string) *Error {
	kind := KindUpstream
	switch status {
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindUnauthorized
	}

	body = truncate(strings.TrimSpace(body), maxBodyLen)
	if body == "" {
		body = http.StatusText(status)
	}

	return &Error{Provider: provider, Kind: kind, Status: status, Err: errors.New(body)}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func Transport(provider string, err error) *Error {
	return &Error{Provider: provider, Kind: KindUnreachable, Err: err}
}

func Parse(provider string, err error) *Error {
	return &Error{Provider: provider, Kind: KindParse, Err: err}
}

// KindOf reports the kind of err, or "" for nil.
// Errors that were never classified count as upstream errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnreachable
	}

	return KindUpstream
}

// HTTPStatus maps a kind to the status an API handler should answer with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case "":
		return http.StatusOK
	default:
		return http.StatusBadGateway
	}
}
