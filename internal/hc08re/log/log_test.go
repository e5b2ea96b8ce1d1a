package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverPanic(t *testing.T) {
	Setup(false)
	assert.True(t, Initialized())

	cleaned := false
	func() {
		defer RecoverPanic("test", func() { cleaned = true })
		panic("boom")
	}()
	assert.True(t, cleaned)

	cleaned = false
	func() {
		defer RecoverPanic("quiet", func() { cleaned = true })
	}()
	assert.False(t, cleaned)
}
