package reactive_test

import (
	"testing"

	"github.com/delaneyj/accessors/reactive"
	"github.com/stretchr/testify/assert"
)

func newRuntime(t *testing.T) *reactive.Runtime {
	t.Helper()
	return reactive.NewRuntime(reactive.WithErrorHandler(func(err error) {
		assert.FailNow(t, err.Error())
	}))
}

func panicValue(fn func()) (r any) {
	defer func() {
		r = recover()
	}()
	fn()
	return nil
}

func counter() (*int, reactive.Callback) {
	n := 0
	return &n, func() {
		n++
	}
}
