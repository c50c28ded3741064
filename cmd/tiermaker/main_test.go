package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tiermaker/internal/codec"
	"github.com/jask/tiermaker/internal/config"
	"github.com/jask/tiermaker/internal/tierlist"
)

func setupCLITest(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TIERMAKER_CONFIG", filepath.Join(home, "missing.toml"))
	t.Setenv("TIERMAKER_STORAGE_BACKEND", "file")
	t.Setenv("TIERMAKER_STORAGE_DIR", filepath.Join(home, "slots"))
	t.Setenv("TIERMAKER_SHARE_BASE_URL", "https://tiers.example.com/")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func exported(t *testing.T, args ...string) tierlist.Board {
	t.Helper()
	out, _, err := run(t, append([]string{"export"}, args...)...)
	require.NoError(t, err)
	b, err := codec.ParseDurable([]byte(out))
	require.NoError(t, err)
	return b
}

func TestExportSeedBoard(t *testing.T) {
	setupCLITest(t)
	require.True(t, exported(t).Equal(tierlist.NewBoard()))

	out, _, err := run(t, "export", "--pretty")
	require.NoError(t, err)
	require.Contains(t, out, "\n  \"tiers\"")
}

func TestImportShareReset(t *testing.T) {
	setupCLITest(t)
	csvPath := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Pizza\nSushi,raw fish\n,\na,b,c\n"), 0o600))

	out, errOut, err := run(t, "import", csvPath)
	require.NoError(t, err)
	require.Equal(t, "imported 2, skipped 1, errors 1\n", out)
	require.Contains(t, errOut, "line 4")

	b := exported(t)
	require.Len(t, b.Unranked, 2)
	require.Equal(t, "raw fish", b.Unranked[1].Label)

	out, _, err = run(t, "share")
	require.NoError(t, err)
	link := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(link, "https://tiers.example.com/#"), link)
	shared, err := codec.DecodeShare(codec.FragmentToken(link))
	require.NoError(t, err)
	require.True(t, shared.Equal(b))

	out, _, err = run(t, "reset")
	require.NoError(t, err)
	require.Contains(t, out, "tierListState")
	require.True(t, exported(t).Equal(tierlist.NewBoard()))
}

func TestSlotFlag(t *testing.T) {
	setupCLITest(t)
	csvPath := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Ramen\n"), 0o600))

	_, _, err := run(t, "--slot", "games", "import", csvPath)
	require.NoError(t, err)
	require.Equal(t, 1, exported(t, "--slot", "games").ItemCount())
	require.Equal(t, 0, exported(t).ItemCount())
}

func TestCommandErrors(t *testing.T) {
	setupCLITest(t)

	_, _, err := run(t, "import", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	_, _, err = run(t, "import", t.TempDir())
	require.Error(t, err)

	_, _, err = run(t, "open")
	require.Error(t, err)

	t.Setenv("TIERMAKER_STORAGE_BACKEND", "floppy")
	_, _, err = run(t, "export")
	require.ErrorContains(t, err, "floppy")
}

func TestSlotsListing(t *testing.T) {
	setupCLITest(t)
	out, _, err := run(t, "slots")
	require.NoError(t, err)
	require.Empty(t, out)

	csvPath := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Ramen\n"), 0o600))
	_, _, err = run(t, "import", csvPath)
	require.NoError(t, err)
	_, _, err = run(t, "--slot", "games", "import", csvPath)
	require.NoError(t, err)

	out, _, err = run(t, "slots")
	require.NoError(t, err)
	require.Equal(t, "  games\n* tierListState\n", out)

	out, _, err = run(t, "--slot", "games", "slots")
	require.NoError(t, err)
	require.Equal(t, "* games\n  tierListState\n", out)
}

func TestConfigInit(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	out, _, err := run(t, "--config", path, "--slot", "games", "config", "init")
	require.NoError(t, err)
	require.Equal(t, "wrote "+path+"\n", out)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "games", cfg.Storage.Slot)
	require.Equal(t, "file", cfg.Storage.Backend)

	_, _, err = run(t, "--config", path, "config", "init")
	require.ErrorContains(t, err, "already exists")
	_, _, err = run(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}
