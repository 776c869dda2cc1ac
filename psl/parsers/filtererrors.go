package parsers

import (
	"context"
	"errors"
)

// NoErrorLimit disables the error limit of AllowErrors.
const NoErrorLimit = -1

var ErrTooManyErrors = errors.New("too many parse errors")

// FilteredSeriesParser is a SeriesParser that skips resumable errors.
type FilteredSeriesParser[T any] interface {
	SeriesParser[T]

	// OnErr registers a callback invoked for each skipped error.
	OnErr(func(error))
}

// AllowErrors wraps `inner` so a resumable error skips the current item
// instead of ending iteration. After `n` skipped errors it aborts with
// `ErrTooManyErrors`; pass `NoErrorLimit` to never abort.
func AllowErrors[T any](inner SeriesParser[T], n int) FilteredSeriesParser[T] {
	return &errorFilter[T]{inner: inner, limit: n}
}

type errorFilter[T any] struct {
	inner    SeriesParser[T]
	limit    int
	skipped  int
	callback func(error)
}

func (f *errorFilter[T]) OnErr(callback func(error)) {
	f.callback = callback
}

func (f *errorFilter[T]) Position() string {
	return f.inner.Position()
}

func (f *errorFilter[T]) Next(ctx context.Context) (T, error) {
	var zero T

	for {
		res, err := f.inner.Next(ctx)
		if err == nil {
			return res, nil
		}

		if IsNonResumableErr(err) {
			return zero, err
		}

		if f.callback != nil {
			f.callback(ErrWithPosition(f.inner, err))
		}

		f.skipped++
		if f.limit != NoErrorLimit && f.skipped > f.limit {
			return zero, ErrTooManyErrors
		}
	}
}
