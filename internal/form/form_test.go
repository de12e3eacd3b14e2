package form

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/five82/locador/internal/state"
)

func TestState_UpdateClearsError(t *testing.T) {
	s := New(map[string]string{"Nome": ""})

	s.SetError("Nome", "required")
	require.True(t, s.HasErrors())
	require.Equal(t, "required", s.Error("Nome"))

	s.Update("Nome", "Caixa")
	require.Empty(t, s.Error("Nome"))
	require.False(t, s.HasErrors())
	require.Equal(t, "Caixa", s.Value("Nome"))
}

func TestState_DefaultsForUnknownFields(t *testing.T) {
	s := New[string](nil)
	require.Empty(t, s.Error("missing"))
	require.False(t, s.Touched("missing"))
	require.Empty(t, s.Value("missing"))
}

func TestState_TouchIsSticky(t *testing.T) {
	s := New(map[string]string{"Nome": ""})
	s.Touch("Nome")
	s.Update("Nome", "x")
	s.SetError("Nome", "bad")
	require.True(t, s.Touched("Nome"))
}

func TestState_HasErrorsIgnoresEmptyMessages(t *testing.T) {
	s := New(map[string]string{})
	s.SetError("a", "")
	require.False(t, s.HasErrors())
	s.ApplyErrors(map[string]string{"b": "too long"})
	require.True(t, s.HasErrors())
	require.Equal(t, map[string]string{"b": "too long"}, s.Errors())
}

func TestState_ResetRestoresInitial(t *testing.T) {
	initial := map[string]string{"Nome": "Itaú", "NumeroBanco": "341"}
	s := New(initial)

	s.Update("Nome", "changed")
	s.Update("Extra", "added")
	s.Touch("Nome")
	s.SetError("NumeroBanco", "bad")

	s.Reset()
	require.Equal(t, initial, s.Values())
	require.False(t, s.Touched("Nome"))
	require.False(t, s.HasErrors())

	initial["Nome"] = "mutated by caller"
	s.Reset()
	require.Equal(t, "Itaú", s.Value("Nome"), "initial values are snapshotted")
}

func TestState_ValuesIsCopy(t *testing.T) {
	s := New(map[string]int{"n": 1})
	v := s.Values()
	v["n"] = 99
	require.Equal(t, 1, s.Value("n"))
}

func newRunner() (*state.Runner, *state.Loading, *state.Notifications) {
	loading := state.NewLoading(nil)
	notes := state.NewNotifications(nil)
	return state.NewRunner(loading, notes, zerolog.Nop()), loading, notes
}

func TestSubmit_ResetsBeforeCallerOnSuccess(t *testing.T) {
	r, loading, notes := newRunner()
	defer notes.Close()
	s := New(map[string]string{"Nome": ""})
	s.Update("Nome", "Bradesco")

	var sent map[string]string
	var valueAtCallback string
	got, err := Submit(context.Background(), r, s, func(_ context.Context, v map[string]string) (int, error) {
		sent = v
		require.True(t, loading.IsLoading("bancos.save"))
		return 9, nil
	}, SubmitOptions[int]{
		LoadingKey:     "bancos.save",
		SuccessMessage: "Bank saved",
		ResetOnSuccess: true,
		OnSuccess:      func(int) { valueAtCallback = s.Value("Nome") },
	})

	require.NoError(t, err)
	require.Equal(t, 9, got)
	require.Equal(t, "Bradesco", sent["Nome"])
	require.Empty(t, valueAtCallback, "form reset before OnSuccess")
	require.False(t, loading.IsLoading("bancos.save"))
	require.Equal(t, 1, notes.Len())
}

func TestSubmit_FailureKeepsValues(t *testing.T) {
	r, _, notes := newRunner()
	defer notes.Close()
	s := New(map[string]string{"Nome": ""})
	s.Update("Nome", "Bradesco")

	boom := errors.New("boom")
	_, err := Submit(context.Background(), r, s, func(context.Context, map[string]string) (int, error) {
		return 0, boom
	}, SubmitOptions[int]{ResetOnSuccess: true})

	require.ErrorIs(t, err, boom)
	require.Equal(t, "Bradesco", s.Value("Nome"))
	require.Equal(t, "boom", notes.List()[0].Message)
}
