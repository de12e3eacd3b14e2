package form

import (
	"context"

	"github.com/five82/locador/internal/state"
)

// SubmitOptions mirror state.RunConfig plus ResetOnSuccess.
type SubmitOptions[R any] struct {
	LoadingKey     string
	SuccessTitle   string
	SuccessMessage string
	ErrorTitle     string
	ErrorMessage   string
	ResetOnSuccess bool
	OnSuccess      func(R)
	OnError        func(error)
}

// Submit runs submit with the current values through the runner. With
// ResetOnSuccess the form is reset before opts.OnSuccess runs.
func Submit[V, R any](ctx context.Context, r *state.Runner, s *State[V], submit func(context.Context, map[string]V) (R, error), opts SubmitOptions[R]) (R, error) {
	values := s.Values()
	return state.Run(ctx, r, func(ctx context.Context) (R, error) {
		return submit(ctx, values)
	}, state.RunConfig[R]{
		LoadingKey:     opts.LoadingKey,
		SuccessTitle:   opts.SuccessTitle,
		SuccessMessage: opts.SuccessMessage,
		ErrorTitle:     opts.ErrorTitle,
		ErrorMessage:   opts.ErrorMessage,
		OnSuccess: func(result R) {
			if opts.ResetOnSuccess {
				s.Reset()
			}
			if opts.OnSuccess != nil {
				opts.OnSuccess(result)
			}
		},
		OnError: opts.OnError,
	})
}
