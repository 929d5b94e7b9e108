package form

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string
	Age  int
}

func validatePerson(p person) Errors {
	errs := Errors{}
	errs.Required("name", p.Name, "name is required")
	return errs
}

func TestStateRevalidatesOnUpdate(t *testing.T) {
	s := NewState(person{}, validatePerson)
	require.True(t, s.Errors().Has("name"))
	require.Empty(t, s.VisibleErrors(), "untouched fields stay quiet")

	s.Touch("name")
	require.True(t, s.VisibleErrors().Has("name"))

	s.Update(func(p *person) { p.Name = "Ana" })
	require.Empty(t, s.Errors())
	require.Equal(t, "Ana", s.Values().Name)
}

func TestStateSubmitBlockedByErrors(t *testing.T) {
	s := NewState(person{}, validatePerson)

	calls := 0
	cmd, err := s.Submit(func(person) tea.Cmd {
		calls++
		return nil
	})

	require.Nil(t, cmd)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "name is required", verr.Errors["name"])
	require.Equal(t, 0, calls)
	require.True(t, s.Attempted())
	require.True(t, s.VisibleErrors().Has("name"), "attempt reveals every error")
}

func TestStateSubmitDispatchesAndClearsFlag(t *testing.T) {
	s := NewState(person{Name: "Ana", Age: 30}, validatePerson)

	var got person
	cmd, err := s.Submit(func(p person) tea.Cmd {
		got = p
		return func() tea.Msg { return "done" }
	})

	require.NoError(t, err)
	require.NotNil(t, cmd)
	require.Equal(t, "done", cmd())
	require.Equal(t, person{Name: "Ana", Age: 30}, got)
	require.False(t, s.Submitting())
}

func TestStateWithoutValidator(t *testing.T) {
	s := NewState(person{}, nil)
	require.Empty(t, s.Errors())

	_, err := s.Submit(func(person) tea.Cmd { return nil })
	require.NoError(t, err)
}
