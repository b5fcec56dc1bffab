package media_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/media"
)

func TestMain(m *testing.M) {
	media.Fs = afero.NewMemMapFs()
	m.Run()
}

func writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(media.Fs, name, data, 0o644))
}

func TestNewLoaderFromFilename_empty(t *testing.T) {
	_, err := media.NewLoaderFromFilename("   ", media.KindAuto)
	assert.ErrorIs(t, err, media.NoFilename)
}

func TestNewLoaderFromFilename_extensionResolvesKind(t *testing.T) {
	writeFile(t, "/game.prg", []byte{0x01, 0x08, 0x00, 0x00})

	ld, err := media.NewLoaderFromFilename("/game.prg", media.KindAuto)
	require.NoError(t, err)
	assert.Equal(t, media.KindPRG, ld.Kind)
	assert.Equal(t, "game", ld.Name)

	require.NoError(t, ld.Open())
	defer ld.Close()
	assert.Equal(t, []byte{0x01, 0x08, 0x00, 0x00}, *ld.Data)
	assert.NotEmpty(t, ld.HashSHA1)
	assert.NotEmpty(t, ld.HashMD5)
}

func TestNewLoaderFromFilename_diskImageStreams(t *testing.T) {
	writeFile(t, "/disk.d64", make([]byte, 174848))

	ld, err := media.NewLoaderFromFilename("/disk.d64", media.KindAuto)
	require.NoError(t, err)
	assert.Equal(t, media.KindD64, ld.Kind)

	require.NoError(t, ld.Open())
	defer ld.Close()

	buf := make([]byte, 4)
	n, err := ld.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

// TestNewLoaderFromFilename_archiveMember exercises the one case media.Fs
// (an in-memory afero filesystem for the rest of this package's tests)
// can't cover: reading a game packed inside a zip archive. archivefs always
// addresses the real OS filesystem, so the fixture is built on disk rather
// than on media.Fs.
func TestNewLoaderFromFilename_archiveMember(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "collection.zip")

	zf, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	w, err := zw.Create("game.prg")
	require.NoError(t, err)
	_, err = w.Write([]byte{0x01, 0x08, 0xaa, 0xbb})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())

	ld, err := media.NewLoaderFromFilename(filepath.Join(archivePath, "game.prg"), media.KindAuto)
	require.NoError(t, err)
	assert.Equal(t, media.KindPRG, ld.Kind)

	require.NoError(t, ld.Open())
	defer ld.Close()
	assert.Equal(t, []byte{0x01, 0x08, 0xaa, 0xbb}, *ld.Data)
	assert.NotEmpty(t, ld.HashSHA1)
}

func TestNewLoaderFromData(t *testing.T) {
	data := []byte{0x01, 0x08, 0xaa, 0xbb}
	ld, err := media.NewLoaderFromData("embedded-game", data, media.KindPRG)
	require.NoError(t, err)
	assert.Equal(t, "embedded-game", ld.Name)
	assert.NotEmpty(t, ld.HashSHA1)

	require.NoError(t, ld.Open())
	assert.Equal(t, data, *ld.Data)
}

func TestNewLoaderFromData_rejectsEmpty(t *testing.T) {
	_, err := media.NewLoaderFromData("x", nil, media.KindPRG)
	assert.Error(t, err)
}

func TestNameFromFilename(t *testing.T) {
	assert.Equal(t, "game", media.NameFromFilename("/path/to/game.PRG"))
	assert.Equal(t, "readme.txt", media.NameFromFilename("/path/to/readme.txt"))
}
