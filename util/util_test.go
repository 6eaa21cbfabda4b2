package util

import (
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.Assert(t, FileExists(dir))
	assert.Assert(t, !FileExists(filepath.Join(dir, "missing")))
}
