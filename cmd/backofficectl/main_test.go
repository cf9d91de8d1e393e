package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	t.Setenv("JWT_SECRET", "ctl-secret")

	out, err := run(t, "token", "issue", "--user", "u-1", "--role", jwt.RoleAnalyst)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("ctl-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, jwt.RoleAnalyst, role)
}

func TestTokenIssue_RolInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "ctl-secret")

	_, err := run(t, "token", "issue", "--user", "u-1", "--role", "root")
	assert.ErrorContains(t, err, "inválido")
}
