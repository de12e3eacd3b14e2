package state

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/five82/locador/internal/locador"
)

func newTestRunner() (*Runner, *Loading, *Notifications) {
	loading := NewLoading(nil)
	notes := NewNotifications(nil, WithScheduler(&fakeScheduler{}))
	return NewRunner(loading, notes, zerolog.Nop()), loading, notes
}

func TestRun_SuccessSequence(t *testing.T) {
	r, loading, notes := newTestRunner()

	var during bool
	var got int
	result, err := Run(context.Background(), r, func(context.Context) (int, error) {
		during = loading.IsLoading("k")
		return 42, nil
	}, RunConfig[int]{
		LoadingKey:     "k",
		SuccessMessage: "ok",
		OnSuccess:      func(v int) { got = v },
	})

	require.NoError(t, err)
	require.Equal(t, 42, result)
	require.True(t, during, "key is loading while op runs")
	require.False(t, loading.IsLoading("k"))
	require.Equal(t, 42, got)

	items := notes.List()
	require.Len(t, items, 1)
	require.Equal(t, KindSuccess, items[0].Kind)
	require.Equal(t, DefaultSuccessTitle, items[0].Title)
	require.Equal(t, "ok", items[0].Message)
}

func TestRun_SuccessWithoutMessageIsSilent(t *testing.T) {
	r, _, notes := newTestRunner()
	_, err := Run(context.Background(), r, func(context.Context) (string, error) { return "x", nil }, RunConfig[string]{LoadingKey: "k"})
	require.NoError(t, err)
	require.Zero(t, notes.Len())
}

func TestRun_FailureReturnsErrorAndNotifies(t *testing.T) {
	r, loading, notes := newTestRunner()

	apiErr := &locador.APIError{Status: 404, Method: "PUT", Path: "/bancos/5", Detail: "not found"}
	var seen error
	result, err := Run(context.Background(), r, func(context.Context) (*locador.Banco, error) {
		return nil, fmt.Errorf("updating banco 5: %w", apiErr)
	}, RunConfig[*locador.Banco]{
		LoadingKey: "bancos.save",
		OnSuccess:  func(*locador.Banco) { t.Fatal("OnSuccess called on failure") },
		OnError:    func(e error) { seen = e },
	})

	require.Nil(t, result)
	require.ErrorIs(t, err, apiErr)
	require.ErrorIs(t, seen, apiErr)
	require.False(t, loading.IsLoading("bancos.save"))

	items := notes.List()
	require.Len(t, items, 1)
	require.Equal(t, KindError, items[0].Kind)
	require.True(t, items[0].Persistent)
	require.Equal(t, "not found", items[0].Message)
}

func TestRun_StopsLoadingOnPanic(t *testing.T) {
	r, loading, _ := newTestRunner()

	require.Panics(t, func() {
		_, _ = Run(context.Background(), r, func(context.Context) (int, error) {
			panic("boom")
		}, RunConfig[int]{LoadingKey: "k"})
	})
	require.False(t, loading.IsLoading("k"))
}

func TestRun_EmptyKeySkipsRegistry(t *testing.T) {
	r, loading, _ := newTestRunner()
	_, _ = Run(context.Background(), r, func(context.Context) (int, error) { return 1, nil }, RunConfig[int]{})
	require.False(t, loading.Known(""))
}

type blankError struct{}

func (blankError) Error() string { return "" }

func TestDisplayMessage_Precedence(t *testing.T) {
	detailed := fmt.Errorf("wrap: %w", &locador.APIError{Status: 400, Detail: "Nome: field required"})

	tests := []struct {
		name     string
		err      error
		override string
		want     string
	}{
		{"override wins", detailed, "Could not save", "Could not save"},
		{"server detail", detailed, "", "Nome: field required"},
		{"error text", errors.New("dial tcp: refused"), "", "dial tcp: refused"},
		{"fallback", blankError{}, "", FallbackErrorMessage},
		{"nil error", nil, "", FallbackErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DisplayMessage(tt.err, tt.override))
		})
	}
}
