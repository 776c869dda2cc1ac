// Package parsers provides cursor-style parsing of item series with
// resumable error handling.
package parsers

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// SeriesParser is a cursor over a series of `T`.
type SeriesParser[T any] interface {
	// Next returns the next item of the series, or an error.
	//
	// Errors wrapped in `NonResumableError` mean the underlying source
	// is broken and no further calls to `Next` should be made. Any
	// other error concerns only the current item.
	Next(context.Context) (T, error)

	// Position describes where in the underlying source the cursor
	// currently is, for error messages.
	Position() string
}

// ForEach drains `parser`, invoking `callback` for every item.
//
// The first error ends iteration: `io.EOF` is mapped to nil, anything
// else is annotated with the parser position. Wrap the parser with
// `AllowErrors` to skip resumable errors instead.
func ForEach[T any](ctx context.Context, parser SeriesParser[T], callback func(T) error) (rerr error) {
	defer func() {
		rerr = ErrWithPosition(parser, rerr)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := parser.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		if err := callback(res); err != nil {
			return err
		}
	}
}

// ErrWithPosition annotates `err` with the parser's current position.
func ErrWithPosition[T any](parser SeriesParser[T], err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", parser.Position(), err)
}

// NonResumableError marks an error the parser cannot recover from.
type NonResumableError struct {
	inner error
}

// NewNonResumableError wraps `inner` as non-resumable.
func NewNonResumableError(inner error) error {
	return &NonResumableError{inner}
}

func (e *NonResumableError) Error() string {
	return fmt.Sprintf("non resumable parse error: %s", e.inner.Error())
}

func (e *NonResumableError) Unwrap() error {
	return e.inner
}

// IsNonResumableErr reports whether `err` wraps a NonResumableError.
func IsNonResumableErr(err error) bool {
	var nonResumableError *NonResumableError

	return errors.As(err, &nonResumableError)
}
