// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
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

package prefs_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/prefs"
)

const tempFile = "c64core_prefs_test"

func getTmpPrefFile(t *testing.T) string {
	t.Helper()

	td := os.TempDir()
	info, err := os.Stat(td)
	require.NoError(t, err)

	p := info.Mode().Perm()
	require.Equal(t, os.FileMode(0o0700), p&0o0700)

	return filepath.Join(td, tempFile)
}

func delTmpPrefFile(t *testing.T, fn string) {
	t.Helper()

	if err := os.Remove(fn); err != nil {
		var pathError *os.PathError
		if !errors.As(err, &pathError) {
			t.Errorf("error removing tmp pref file: %v", err)
		}
	}
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	f, err := os.Open(fn)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	assert.Equal(t, expected, string(data))
}

func TestBool(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	require.NoError(t, dsk.Add("test", &v))
	require.NoError(t, dsk.Add("testB", &w))
	require.NoError(t, dsk.Add("testC", &x))

	require.NoError(t, v.Set(true))
	require.NoError(t, w.Set("foo"))
	require.NoError(t, x.Set("true"))

	require.NoError(t, dsk.Save())

	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestString(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v prefs.String
	require.NoError(t, dsk.Add("foo", &v))
	require.NoError(t, v.Set("bar"))
	require.NoError(t, dsk.Save())

	cmpTmpFile(t, fn, "foo :: bar\n")
}

func TestFloat(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v prefs.Float
	require.NoError(t, dsk.Add("foo", &v))

	assert.Error(t, v.Set("bar"))

	require.NoError(t, v.Set(1.0))
	require.NoError(t, v.Set(2.0))
	require.NoError(t, v.Set(-3.0))

	require.NoError(t, dsk.Save())
}

func TestInt(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v prefs.Int
	var w prefs.Int
	require.NoError(t, dsk.Add("number", &v))
	require.NoError(t, dsk.Add("numberB", &w))

	require.NoError(t, v.Set(10))

	// test string conversion to int
	require.NoError(t, w.Set("99"))

	require.NoError(t, dsk.Save())

	cmpTmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	// while we have a prefs.Int instance set up we'll test some
	// failure conditions
	assert.Error(t, v.Set("---"))
	assert.Error(t, v.Set(1.0))
}

func TestGeneric(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var w, h int

	v := prefs.NewGeneric(
		func(s prefs.Value) error {
			_, err := fmt.Sscanf(s.(string), "%d,%d", &w, &h)
			return err
		},
		func() prefs.Value {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)

	require.NoError(t, dsk.Add("generic", v))

	// change values
	w = 1
	h = 2

	require.NoError(t, dsk.Save())
	cmpTmpFile(t, fn, "generic :: 1,2\n")

	// reset values
	w = 0
	h = 0

	// reload them from disk
	require.NoError(t, dsk.Load())

	// check that the values have been restored
	assert.Equal(t, 1, w)
	assert.Equal(t, 2, h)
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v prefs.Bool
	require.NoError(t, dsk.Add("test", &v))
	require.NoError(t, v.Set(true))
	require.NoError(t, dsk.Save())

	// start a new disk instance using the same file. (we haven't deleted it yet)
	dsk, err = prefs.NewDisk(fn)
	require.NoError(t, err)

	var s prefs.String
	require.NoError(t, dsk.Add("foo", &s))
	require.NoError(t, s.Set("bar"))
	require.NoError(t, dsk.Save())

	// compare file. the file should contain contents set by both disk instances
	cmpTmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestMaxStringLength(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var s prefs.String
	require.NoError(t, dsk.Add("test", &s))
	require.NoError(t, s.Set("123456789"))
	assert.Equal(t, "123456789", s.String())

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	assert.Equal(t, "12345", s.String())

	// unsetting a maximum length (using value zero) will not result in
	// cropped string infomration reappearing
	s.SetMaxLen(0)
	assert.Equal(t, "12345", s.String())

	// set string after setting a maximum length will result in the set string
	// being cropped
	s.SetMaxLen(3)
	require.NoError(t, s.Set("abcdefghi"))
	assert.Equal(t, "abc", s.String())
}
