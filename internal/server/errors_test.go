package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"github.com/stretchr/testify/assert"
)

func decodeJSON(resp *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(resp.Body.Bytes(), v)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
		cause   string
	}{
		{
			name:    "load failure keeps cause",
			err:     fmt.Errorf("%w: %w", domain.ErrLoadFailed, errors.New("read product_charges: no such file")),
			status:  http.StatusInternalServerError,
			message: domain.MessageProductsFailed,
			cause:   "read product_charges: no such file",
		},
		{
			name:    "rate limited",
			err:     ErrRateLimited,
			status:  http.StatusTooManyRequests,
			message: "Too many requests",
		},
		{
			name:    "limiter unavailable",
			err:     fmt.Errorf("redis: %w", ErrServiceUnavailable),
			status:  http.StatusServiceUnavailable,
			message: "Service unavailable",
		},
		{
			name:    "not found",
			err:     ErrNotFound,
			status:  http.StatusNotFound,
			message: "Not found",
		},
		{
			name:    "unclassified error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: domain.MessageProductsFailed,
			cause:   "boom",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, payload.StatusCode)
			assert.False(t, payload.Success)
			assert.Nil(t, payload.ResponseObject)
			assert.Equal(t, tc.message, payload.Message)
			assert.Equal(t, tc.cause, payload.Error)
		})
	}
}

func TestCauseMessage(t *testing.T) {
	assert.Equal(t, "Unknown error", causeMessage(nil))
	assert.Equal(t, "Unknown error", causeMessage(errors.New("   ")))
	assert.Equal(t, "Unknown error", causeMessage(fmt.Errorf("%w: %w", domain.ErrLoadFailed, errors.New(""))))
	assert.Equal(t, "File not found", causeMessage(fmt.Errorf("%w: %w", domain.ErrLoadFailed, errors.New("File not found"))))
}

func TestClassifyErrorForLog(t *testing.T) {
	kind, code := classifyErrorForLog(fmt.Errorf("%w: %w", domain.ErrLoadFailed, errors.New("x")))
	assert.Equal(t, "load_failed", kind)
	assert.Equal(t, "hotel_products_load_failed", code)

	kind, _ = classifyErrorForLog(ErrRateLimited)
	assert.Equal(t, "rate_limited", kind)

	kind, _ = classifyErrorForLog(errors.New("other"))
	assert.Equal(t, "internal_error", kind)
}
