package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamma-omg/stock-api/internal/market"
)

// ErrNotFound means the provider has no bars or no record for a symbol.
var ErrNotFound = errors.New("no data found")

// Provider is a source of daily bars and instrument metadata.
type Provider interface {
	Name() string
	FetchHistory(ctx context.Context, symbol string, period market.Period) (market.Series, error)
	FetchMetadata(ctx context.Context, symbol string) (market.Metadata, error)
}

// UpstreamError is any provider failure other than a missing symbol:
// transport errors, bad status codes, undecodable payloads.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(provider string, err error) error {
	return &UpstreamError{Provider: provider, Err: err}
}

func NotFound(symbol string) error {
	return fmt.Errorf("%w for %s", ErrNotFound, symbol)
}

type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return fmt.Sprintf("kind_%d", int(k))
	}
}

// Classify tells not-found apart from every other failure. Errors that are
// neither ErrNotFound nor UpstreamError count as upstream failures.
func Classify(err error) Kind {
	if err == nil {
		return KindOK
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}

	return KindUpstream
}
