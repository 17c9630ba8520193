package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PartialResult holds a result or an error for partial success patterns.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// Settle2 runs two functions concurrently and waits for both. Unlike an
// errgroup.WithContext fan-out, a failure in one does not cancel the other;
// each error is reported next to its own result.
//
// Example:
//
//	questions, user := Settle2(ctx, store.LoadQuestions, store.LoadUser)
//	if questions.Err != nil {
//	    ...
//	}
func Settle2[T1, T2 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
) (PartialResult[T1], PartialResult[T2]) {
	var (
		g  errgroup.Group
		r1 PartialResult[T1]
		r2 PartialResult[T2]
	)

	g.Go(func() error {
		r1.Value, r1.Err = fn1(ctx)
		return nil
	})

	g.Go(func() error {
		r2.Value, r2.Err = fn2(ctx)
		return nil
	})

	_ = g.Wait()

	return r1, r2
}
