package state

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// FallbackErrorMessage is shown when a failure carries no usable text.
const FallbackErrorMessage = "Unexpected error, please try again"

// DefaultErrorTitle titles error notifications raised by Run.
const DefaultErrorTitle = "Error"

// DefaultSuccessTitle titles success notifications raised by Run.
const DefaultSuccessTitle = "Success"

// Runner wraps asynchronous operations with loading bookkeeping and
// notifications.
type Runner struct {
	loading *Loading
	notes   *Notifications
	logger  zerolog.Logger
}

// NewRunner returns a Runner bound to the shared registry and queue.
func NewRunner(loading *Loading, notes *Notifications, logger zerolog.Logger) *Runner {
	return &Runner{
		loading: loading,
		notes:   notes,
		logger:  logger.With().Str("component", "runner").Logger(),
	}
}

// RunConfig describes the side effects around one operation. Empty messages
// suppress the corresponding text; an empty LoadingKey skips the registry.
type RunConfig[T any] struct {
	LoadingKey     string
	SuccessTitle   string
	SuccessMessage string
	ErrorTitle     string
	ErrorMessage   string
	OnSuccess      func(T)
	OnError        func(error)
}

// Run executes op. On success it queues the success notification (when a
// message is set), calls OnSuccess and returns the result. On failure it
// queues a persistent error notification, calls OnError and returns the
// error. The loading key is released in every case, panics included.
func Run[T any](ctx context.Context, r *Runner, op func(context.Context) (T, error), cfg RunConfig[T]) (T, error) {
	if cfg.LoadingKey != "" {
		r.loading.Start(cfg.LoadingKey)
		defer r.loading.Stop(cfg.LoadingKey)
	}

	result, err := op(ctx)
	if err != nil {
		msg := DisplayMessage(err, cfg.ErrorMessage)
		title := cfg.ErrorTitle
		if title == "" {
			title = DefaultErrorTitle
		}
		r.logger.Warn().Err(err).Str("key", cfg.LoadingKey).Msg("operation failed")
		r.notes.Error(title, msg)
		if cfg.OnError != nil {
			cfg.OnError(err)
		}
		var zero T
		return zero, err
	}

	if cfg.SuccessMessage != "" || cfg.SuccessTitle != "" {
		title := cfg.SuccessTitle
		if title == "" {
			title = DefaultSuccessTitle
		}
		r.notes.Success(title, cfg.SuccessMessage)
	}
	if cfg.OnSuccess != nil {
		cfg.OnSuccess(result)
	}
	return result, nil
}

type detailer interface {
	ErrorDetail() string
}

// ErrorDetail returns the server-reported detail carried by err, if any.
func ErrorDetail(err error) string {
	var d detailer
	if errors.As(err, &d) {
		return strings.TrimSpace(d.ErrorDetail())
	}
	return ""
}

// DisplayMessage reduces err to one user-facing string: override when set,
// then the server detail, then the error text, then FallbackErrorMessage.
func DisplayMessage(err error, override string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if err == nil {
		return FallbackErrorMessage
	}
	if s := ErrorDetail(err); s != "" {
		return s
	}
	if s := strings.TrimSpace(err.Error()); s != "" {
		return s
	}
	return FallbackErrorMessage
}
