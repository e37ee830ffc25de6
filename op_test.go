// SPDX-License-Identifier: GPL-3.0-or-later

package partialio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Op.String produces the compact labels used in structured logging.
func TestOpString(t *testing.T) {
	assert.Equal(t, "unlimited", Unlimited().String())
	assert.Equal(t, "limited(2)", Limited(2).String())
	assert.Equal(t, "limited(0)", Limited(0).String())
	assert.Equal(t, "err(wouldBlock)", Err(KindWouldBlock).String())
	assert.Equal(t, "err(interrupted)", Err(KindInterrupted).String())
	assert.Equal(t, "err(other)", Err(KindOther).String())
}

// The zero Op value behaves like Unlimited.
func TestOpZeroValueIsUnlimited(t *testing.T) {
	assert.Equal(t, Unlimited(), Op{})
}

// ErrKind.String covers the closed set plus the out-of-range case.
func TestErrKindString(t *testing.T) {
	assert.Equal(t, "wouldBlock", KindWouldBlock.String())
	assert.Equal(t, "interrupted", KindInterrupted.String())
	assert.Equal(t, "other", KindOther.String())
	assert.Equal(t, "errKind(unknown)", ErrKind(117).String())
}

// Limited rejects negative byte budgets loudly.
func TestLimitedNegativePanics(t *testing.T) {
	assert.Panics(t, func() { Limited(-1) })
}
