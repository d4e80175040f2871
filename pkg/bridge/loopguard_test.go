package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopGuardFirstWriterWins(t *testing.T) {
	guard := NewLoopGuard()

	// Hardware observes the identifier first
	assert.True(t, guard.AdmitFromHardware(0x100))
	assert.Equal(t, dirHardware, guard.owner(0x100))
	for i := 0; i < 3; i++ {
		assert.False(t, guard.AdmitFromVirtual(0x100))
	}
	// Ownership is sticky
	assert.True(t, guard.AdmitFromHardware(0x100))
	assert.Equal(t, dirHardware, guard.owner(0x100))
}

func TestLoopGuardSymmetric(t *testing.T) {
	guard := NewLoopGuard()

	assert.True(t, guard.AdmitFromVirtual(0x200))
	assert.Equal(t, dirVirtual, guard.owner(0x200))
	for i := 0; i < 3; i++ {
		assert.False(t, guard.AdmitFromHardware(0x200))
	}
	assert.True(t, guard.AdmitFromVirtual(0x200))
}

func TestLoopGuardIndependentIdentifiers(t *testing.T) {
	guard := NewLoopGuard()

	assert.True(t, guard.AdmitFromHardware(0x100))
	assert.True(t, guard.AdmitFromVirtual(0x200))
	assert.Equal(t, dirHardware, guard.owner(0x100))
	assert.Equal(t, dirVirtual, guard.owner(0x200))
	assert.Equal(t, dirUnassigned, guard.owner(0x300))
}
