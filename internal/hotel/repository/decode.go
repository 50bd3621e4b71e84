package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"go.opentelemetry.io/otel/attribute"
)

const (
	collectionAssignments = "product_assignments"
	collectionCharges     = "product_charges"

	storeFile   = "file"
	storeObject = "minio"
)

var (
	errNotArray     = errors.New("top-level value is not an array")
	errNullElement  = errors.New("null element")
	errTrailingData = errors.New("unexpected data after top-level array")
)

func decodeAssignments(r io.Reader) ([]domain.ProductAssignment, error) {
	out, err := decodeArray[domain.ProductAssignment](r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", collectionAssignments, err)
	}
	return out, nil
}

func decodeCharges(r io.Reader) ([]domain.ProductCharge, error) {
	out, err := decodeArray[domain.ProductCharge](r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", collectionCharges, err)
	}
	return out, nil
}

// decodeArray reads exactly one JSON array of objects. A top-level null, a
// null element, or any token after the closing bracket is an error.
func decodeArray[T any](r io.Reader) ([]T, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errNotArray
	}

	out := make([]T, 0)
	for i := 0; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w at index %d", errNullElement, i)
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, item)
	}

	if _, err := dec.Token(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errTrailingData, tok)
	}
	return out, nil
}

func spanAttributes(store, collection string, extra ...attribute.KeyValue) []attribute.KeyValue {
	return append([]attribute.KeyValue{
		attribute.String("hotel.store", store),
		attribute.String("hotel.collection", collection),
	}, extra...)
}
