// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package media

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gocbm/c64core/archivefs"
	"github.com/gocbm/c64core/logger"
)

// Fs is the filesystem media is loaded from. Tests replace it with
// afero.NewMemMapFs() so loading can be exercised without real files.
var Fs afero.Fs = afero.NewOsFs()

// NoFilename is returned when a Loader is requested for the empty (or
// whitespace-only) filename.
var NoFilename = errors.New("no filename")

// Loader abstracts every way C64 media can be loaded: PRG program files,
// T64/TAP tape images, CRT cartridges, and D64/D71/D81 disk images.
//
// Disk images in particular are large enough, and mutated often enough by
// writes back to the host file, that Loader streams them from an open afero
// file rather than slurping the whole image into memory up front; everything
// else is loaded eagerly into Data.
//
// A Filename addressing a path inside a zip archive (e.g.
// "collection.zip/game.d64") is read via archivefs instead of Fs, and always
// eagerly - a zip entry can't be opened for writing in place, so archived
// disk images lose the stream-and-write-back path and are read-only for the
// lifetime of the Loader.
type Loader struct {
	io.ReadSeeker

	// Name is how the loaded media should be referred to outside of this
	// package - usually the filename with its extension stripped.
	Name string

	// Filename of the media being loaded. For embedded data this is the name
	// passed to NewLoaderFromData.
	Filename string

	// Kind is the media format. KindAuto means Open will attempt to resolve
	// it from the file extension, falling back to a content fingerprint.
	Kind Kind

	// HashSHA1 and HashMD5 are populated once Open has read the data. If
	// either field is non-empty before calling Open, Open checks the loaded
	// data hashes to that value and fails otherwise.
	HashSHA1 string
	HashMD5  string

	// Data holds the fully loaded content once Open returns, for every Kind
	// except streamed disk images. The pointer-to-a-slice indirection allows
	// a Loader passed by value to see updates made through another copy.
	Data *[]byte

	data *bytes.Buffer

	// stream is non-nil only for disk image kinds, which are read/written in
	// place rather than loaded wholesale. The double pointer lets a Loader
	// passed by value still observe Close() from an earlier copy.
	stream *afero.File

	embedded bool
}

// NewLoaderFromFilename is the preferred way to construct a Loader for a
// file on Fs. kind may be KindAuto to resolve the format from the file
// extension (falling back to a content fingerprint during Open).
func NewLoaderFromFilename(filename string, kind Kind) (Loader, error) {
	if strings.TrimSpace(filename) == "" {
		return Loader{}, fmt.Errorf("media: %w", NoFilename)
	}

	filename, err := filepath.Abs(filename)
	if err != nil {
		return Loader{}, fmt.Errorf("media: %w", err)
	}

	if kind == "" {
		kind = KindAuto
	}

	ld := Loader{
		Filename: filename,
		Kind:     kind,
	}

	data := make([]byte, 0)
	ld.Data = &data

	if ld.Kind == KindAuto {
		ext := strings.ToUpper(filepath.Ext(filename))
		if k, ok := FileExtensions[ext]; ok {
			ld.Kind = k
		}
	}

	// disk images are streamed rather than loaded wholesale
	if IsDiskImage(ld.Kind) {
		ld.stream = new(afero.File)
	}

	ld.Name = decideOnName(ld)

	return ld, nil
}

// NewLoaderFromData constructs a Loader over in-memory data, useful for
// embedded ROM/demo images (go:embed) or data fetched by other means. kind
// may be KindAuto to resolve the format by content fingerprint.
func NewLoaderFromData(name string, data []byte, kind Kind) (Loader, error) {
	if len(data) == 0 {
		return Loader{}, fmt.Errorf("media: embedded data is empty")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Loader{}, fmt.Errorf("media: no name for embedded data")
	}

	if kind == "" {
		kind = KindAuto
	}
	if kind == KindAuto {
		kind = miniFingerprint(data)
	}

	ld := Loader{
		Filename: name,
		Kind:     kind,
		Data:     &data,
		data:     bytes.NewBuffer(data),
		embedded: true,
		HashSHA1: fmt.Sprintf("%x", sha1.Sum(data)),
		HashMD5:  fmt.Sprintf("%x", md5.Sum(data)),
	}

	ld.Name = decideOnName(ld)

	return ld, nil
}

// Close should be called before disposing of a Loader instance that was
// opened with a stream (disk images).
//
// Implements io.Closer.
func (ld Loader) Close() error {
	if ld.stream == nil || *ld.stream == nil {
		return nil
	}

	err := (*ld.stream).Close()
	*ld.stream = nil
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}
	logger.Logf("media", "stream closed (%s)", ld.Filename)

	return nil
}

// Implements io.Reader.
func (ld Loader) Read(p []byte) (int, error) {
	if ld.stream == nil {
		return ld.data.Read(p)
	}
	if *ld.stream == nil {
		return 0, nil
	}
	return (*ld.stream).Read(p)
}

// Implements io.Seeker.
func (ld Loader) Seek(offset int64, whence int) (int64, error) {
	if ld.stream == nil || *ld.stream == nil {
		return 0, nil
	}
	return (*ld.stream).Seek(offset, whence)
}

// WriteAt writes directly back to an open disk image stream. It is a no-op,
// returning zero bytes written, for non-streamed Loaders: callers that need
// to persist changes to a PRG/T64/TAP/CRT image should do so via Data and a
// fresh Save, not WriteAt.
func (ld Loader) WriteAt(p []byte, off int64) (int, error) {
	if ld.stream == nil || *ld.stream == nil {
		return 0, nil
	}
	return (*ld.stream).WriteAt(p, off)
}

// isArchiveMember reports whether filename addresses a path stored inside a
// supported archive (e.g. "collection.zip/game.d64") rather than a plain
// file on Fs.
func isArchiveMember(filename string) bool {
	dir := filepath.Dir(filename)
	for dir != "." && dir != string(filepath.Separator) {
		ext := strings.ToUpper(filepath.Ext(dir))
		for _, archiveExt := range archivefs.ArchiveExtensions {
			if ext == archiveExt {
				return true
			}
		}
		dir = filepath.Dir(dir)
	}
	return false
}

// Open reads the media into Data (or, for disk images not inside an
// archive, opens the backing stream for in-place read/write) and resolves
// Kind if it was KindAuto.
func (ld *Loader) Open() error {
	if ld.embedded {
		return nil
	}

	if isArchiveMember(ld.Filename) {
		r, size, err := archivefs.Open(ld.Filename)
		if err != nil {
			return fmt.Errorf("media: %w", err)
		}
		data := make([]byte, size)
		if _, err := io.ReadFull(r, data); err != nil {
			return fmt.Errorf("media: %w", err)
		}
		return ld.finishEagerLoad(data)
	}

	if ld.stream != nil {
		if err := ld.Close(); err != nil {
			return fmt.Errorf("media: %w", err)
		}

		f, err := Fs.OpenFile(ld.Filename, os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("media: %w", err)
		}
		*ld.stream = f
		logger.Logf("media", "stream open (%s)", ld.Filename)

		return nil
	}

	if ld.Data != nil && len(*ld.Data) > 0 {
		return nil
	}

	f, err := Fs.Open(ld.Filename)
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}

	return ld.finishEagerLoad(data)
}

// finishEagerLoad stores data as the Loader's content, resolving Kind and
// verifying HashSHA1/HashMD5 if either was set before Open was called. It is
// the common tail of both the plain-file and archive-member load paths.
func (ld *Loader) finishEagerLoad(data []byte) error {
	*ld.Data = data
	ld.data = bytes.NewBuffer(*ld.Data)

	if ld.Kind == KindAuto || ld.Kind == "" {
		ld.Kind = miniFingerprint(*ld.Data)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(*ld.Data))
	if ld.HashSHA1 != "" && ld.HashSHA1 != hash {
		return fmt.Errorf("media: unexpected SHA1 hash value")
	}
	ld.HashSHA1 = hash

	hash = fmt.Sprintf("%x", md5.Sum(*ld.Data))
	if ld.HashMD5 != "" && ld.HashMD5 != hash {
		return fmt.Errorf("media: unexpected MD5 hash value")
	}
	ld.HashMD5 = hash

	return nil
}
