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

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/errors"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	assert.Equal(t, "test error: foo", e.Error())

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := errors.Errorf(testError, e)
	assert.Equal(t, "test error: foo", f.Error())
}

func TestIs(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	assert.True(t, errors.Is(e, testError))

	// Has() should fail because we haven't included testErrorB anywhere in the error
	assert.False(t, errors.Has(e, testErrorB))

	// packing an error inside an error of a different type keeps both:
	// the outer head is testErrorB and testError is still found inside it
	f := errors.Errorf(testErrorB, e)
	assert.False(t, errors.Is(f, testError))
	assert.True(t, errors.Is(f, testErrorB))
	assert.True(t, errors.Has(f, testError))
	assert.True(t, errors.Has(f, testErrorB))

	assert.True(t, errors.IsAny(e))
	assert.True(t, errors.IsAny(f))
}

func TestPlainErrors(t *testing.T) {
	e := fmt.Errorf("plain test error")
	assert.False(t, errors.IsAny(e))

	const testError = "test error: %s"
	assert.False(t, errors.Has(e, testError))
}

func TestKindRoundTrip(t *testing.T) {
	e := errors.Errorf(string(errors.DiskWriteProtected), "drive 8")
	assert.True(t, errors.Is(e, string(errors.DiskWriteProtected)))
	assert.Equal(t, string(errors.DiskWriteProtected), errors.Head(e))
}
