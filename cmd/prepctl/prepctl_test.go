package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"talent-hive/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		lookupJSON = false
		lookupOffline = false
		adminTokenTTL = 0
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLookupOffline(t *testing.T) {
	out, err := execute(t, "lookup", "--offline", "-c", "Acme Corp", "-t", "Software Engineer")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Glassdoor Interview Questions: "))
	assert.Equal(t, "LeetCode Problems: https://leetcode.com/problemset/all/?search=Software", lines[1])
}

func TestLookupOffline_JSON(t *testing.T) {
	out, err := execute(t, "lookup", "--offline", "--json", "-c", "Acme Corp", "-t", "Product Designer")
	require.NoError(t, err)

	var resources []string
	require.NoError(t, json.Unmarshal([]byte(out), &resources))
	assert.Len(t, resources, 3)
}

func TestAdminToken(t *testing.T) {
	t.Setenv("APP_NAME", "talent-hive")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "s3cret")

	out, err := execute(t, "admin-token", "--subject", "ops", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := jwt.NewHMACService("s3cret", time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Subject)
}

func TestAdminToken_RequiresSecret(t *testing.T) {
	t.Setenv("APP_NAME", "talent-hive")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := execute(t, "admin-token")
	assert.ErrorContains(t, err, "JWT_ACCESS_SECRET")
}
