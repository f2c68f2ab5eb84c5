package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/slashsum/report"
)

func TestSave_writes_sidecar_next_to_input(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(pa, []byte("content"), 0o600))

	sp, err := report.Save(pa, "File: data.bin\n")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.bin.checksum"), sp)

	got, err := os.ReadFile(sp) //nolint:gosec // test temp dir
	require.NoError(t, err)
	assert.Equal(t, "File: data.bin\n", string(got))
}

func TestSave_overwrites_previous_sidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(pa+".checksum", []byte("stale"), 0o600))

	sp, err := report.Save(pa, "fresh\n")
	require.NoError(t, err)

	got, err := os.ReadFile(sp) //nolint:gosec // test temp dir
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(got))
}

func TestSave_missing_directory(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "gone", "data.bin")

	_, err := report.Save(pa, "x")

	require.ErrorIs(t, err, report.ErrSave)
	assert.Contains(t, err.Error(), "saving checksums")
}

func TestSidecarPath_rejects_non_utf8_name(t *testing.T) {
	t.Parallel()

	_, err := report.SidecarPath(filepath.Join(t.TempDir(), "bad\xffname"))

	assert.ErrorIs(t, err, report.ErrSave)
}

func FuzzSidecarPath(f *testing.F) {
	f.Add("file.txt")
	f.Add("dir/file.txt")
	f.Add("")
	f.Add("\xff")

	f.Fuzz(func(t *testing.T, name string) {
		sp, err := report.SidecarPath(name)
		if err != nil {
			assert.ErrorIs(t, err, report.ErrSave)
			return
		}

		assert.Equal(t, filepath.Base(name)+".checksum", filepath.Base(sp))
	})
}
