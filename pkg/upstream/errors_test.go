package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-playground/assert/v2"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Kind
	}{
		{name: "not found", status: http.StatusNotFound, want: KindNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, want: KindRateLimited},
		{name: "unauthorized", status: http.StatusUnauthorized, want: KindUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: KindUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, want: KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus("NewsAPI", tt.status, "")
			assert.Equal(t, tt.want, err.Kind)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("newsapi fetch: %w", FromStatus("NewsAPI", http.StatusTooManyRequests, "slow down"))
	assert.Equal(t, KindRateLimited, KindOf(err))
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindUpstream, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnreachable, KindOf(fmt.Errorf("call: %w", context.DeadlineExceeded)))
}

func TestFromStatus_TruncatesBody(t *testing.T) {
	body := make([]byte, 500)
	for i := range body {
		body[i] = 'x'
	}

	err := FromStatus("Open-Meteo", http.StatusBadGateway, string(body))
	assert.Equal(t, 200, len(err.Err.Error()))
}

func TestFromStatus_TruncatesOnRuneBoundary(t *testing.T) {
	body := "x" + strings.Repeat("é", 150)

	err := FromStatus("NewsAPI", http.StatusInternalServerError, body)
	msg := err.Err.Error()

	assert.Equal(t, true, utf8.ValidString(msg))
	assert.Equal(t, 199, len(msg))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(KindRateLimited))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(KindParse))
	assert.Equal(t, http.StatusOK, HTTPStatus(""))
}
