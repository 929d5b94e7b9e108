package form

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepeatedValueAllowed_Create(t *testing.T) {
	reg := NewRegistry("111.111.111-11", "222.222.222-22")

	require.True(t, RepeatedValueAllowed(reg, "", "", ModeCreate), "empty passes")
	require.True(t, RepeatedValueAllowed(reg, "", "333.333.333-33", ModeCreate))
	require.False(t, RepeatedValueAllowed(reg, "", "111.111.111-11", ModeCreate))

	// a create form has no original to keep
	require.False(t, RepeatedValueAllowed(reg, "111.111.111-11", "111.111.111-11", ModeCreate))
}

func TestRepeatedValueAllowed_Edit(t *testing.T) {
	reg := NewRegistry("111.111.111-11", "222.222.222-22")

	require.True(t, RepeatedValueAllowed(reg, "111.111.111-11", "111.111.111-11", ModeEdit), "unchanged passes")
	require.False(t, RepeatedValueAllowed(reg, "111.111.111-11", "222.222.222-22", ModeEdit), "taken by someone else")
	require.True(t, RepeatedValueAllowed(reg, "111.111.111-11", "999.999.999-99", ModeEdit))
	require.True(t, RepeatedValueAllowed(reg, "111.111.111-11", "111.111.111-11", ModeDetail))
}

func TestErrorsEmail(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"", true},
		{"maria@example.com", true},
		{"not-an-email", false},
		{"maria@", false},
		{"Maria <maria@example.com>", false},
		{"maria@localhost", false},
	}

	for _, tc := range cases {
		errs := Errors{}
		errs.Email("email", tc.value, "E-mail inválido.")
		require.Equal(t, !tc.ok, errs.Has("email"), "value %q", tc.value)
	}
}

func TestErrorsRequired(t *testing.T) {
	errs := Errors{}
	errs.Required("name", "", "required")
	errs.RequiredCount("products", 0, "at least one")
	errs.Required("city", "Recife", "required")
	errs.Required("obs", "   ", "required")
	errs.RequiredCount("tags", 2, "at least one")

	require.Equal(t, []string{"name", "products"}, errs.Keys())
}

func TestRegistryIgnoresEmpty(t *testing.T) {
	reg := NewRegistry("", "a", "a", "b")
	require.Equal(t, 2, reg.Len())
	require.False(t, reg.Contains(""))
	require.True(t, reg.Contains("b"))

	var zero Registry
	require.False(t, zero.Contains("a"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("edit")
	require.NoError(t, err)
	require.Equal(t, ModeEdit, m)
	require.True(t, m.Editable())
	require.False(t, ModeDetail.Editable())

	_, err = ParseMode("view")
	require.Error(t, err)
}
