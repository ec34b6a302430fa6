package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	cases := [][2]string{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
		{"  spaced@Example.org ", "spaced@example.org"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, c := range cases {
		assert.Equal(t, c[1], NormalizeEmail(c[0]), c[0])
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("super admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("examiner")
	assert.Error(t, err)
}

func TestUser_ProfileOmitsCredential(t *testing.T) {
	u := &User{ID: 7, Email: "a@example.com", FirstName: "A", LastName: "B", Role: RoleAdmin, PasswordHash: "secret"}

	assert.Equal(t, UserProfile{FirstName: "A", LastName: "B", Email: "a@example.com", Role: RoleAdmin}, u.Profile())
}

func TestQuestion_ChoiceTexts(t *testing.T) {
	q := &Question{Choices: []Choice{{ID: 1, Text: "Yes"}, {ID: 2, Text: "No"}}}
	assert.Equal(t, []string{"Yes", "No"}, q.ChoiceTexts())
}
