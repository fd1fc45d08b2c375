package rpc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	ok := Ok[int, string](5)
	assert.True(t, ok.IsOk())
	assert.Equal(t, 5, ok.Success())
	assert.Equal(t, "", ok.Failure())

	fail := Err[int, string]("bad")
	assert.False(t, fail.IsOk())
	assert.Equal(t, 0, fail.Success())
	assert.Equal(t, "bad", fail.Failure())

	var zero Result[int, string]
	assert.False(t, zero.IsOk())
}

func TestFromGo(t *testing.T) {
	r := FromGo("done", nil)
	assert.True(t, r.IsOk())
	assert.Equal(t, "done", r.Success())

	r = FromGo("ignored", errors.Wrap(errors.New("no space left"), "writing file"))
	assert.False(t, r.IsOk())
	assert.Equal(t, "writing file: no space left", r.Failure())
}
