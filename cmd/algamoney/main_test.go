package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing default file is ignored", func(t *testing.T) {
		require.NoError(t, loadEnvFile(filepath.Join(dir, ".env"), false))
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		require.Error(t, loadEnvFile(filepath.Join(dir, "prod.env"), true))
	})

	t.Run("loads without overriding", func(t *testing.T) {
		path := filepath.Join(dir, "test.env")
		require.NoError(t, os.WriteFile(path, []byte("ALGAMONEY_TEST_A=from-file\nALGAMONEY_TEST_B=from-file\n"), 0o600))
		t.Setenv("ALGAMONEY_TEST_A", "from-env")
		t.Setenv("ALGAMONEY_TEST_B", "")
		os.Unsetenv("ALGAMONEY_TEST_B")

		require.NoError(t, loadEnvFile(path, true))
		require.Equal(t, "from-env", os.Getenv("ALGAMONEY_TEST_A"))
		require.Equal(t, "from-file", os.Getenv("ALGAMONEY_TEST_B"))
	})
}

func TestUserAdd(t *testing.T) {
	t.Setenv("AUTH_DATABASE_FILE", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--env-file", "", "user", "add", "maria", "--authority", "ROLE_PESQUISAR_CATEGORIA"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "created user maria")
	require.Contains(t, out.String(), "password: ")

	root = newRootCmd()
	root.SetArgs([]string{"--env-file", "", "user", "add", "maria", "--password", "x"})
	require.Error(t, root.Execute())
}
