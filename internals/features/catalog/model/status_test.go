package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialStatusTransitions(t *testing.T) {
	assert.True(t, MaterialWaiting.CanTransition(MaterialProcessing))
	assert.True(t, MaterialProcessing.CanTransition(MaterialPublished))
	// mundur ke WAITING diizinkan untuk retry pipeline
	assert.True(t, MaterialProcessing.CanTransition(MaterialWaiting))

	// regenerasi aset: PUBLISHED boleh kembali ke PROCESSING
	assert.True(t, MaterialPublished.CanTransition(MaterialProcessing))

	assert.False(t, MaterialWaiting.CanTransition(MaterialPublished))
	assert.False(t, MaterialPublished.CanTransition(MaterialWaiting))
}

func TestMaterialStatusValid(t *testing.T) {
	assert.True(t, MaterialWaiting.Valid())
	assert.True(t, MaterialPublished.Valid())
	assert.False(t, MaterialStatus("DIPUBLIKASI").Valid())
	assert.False(t, MaterialStatus("").Valid())
}

func TestDigitalStatusTransitions(t *testing.T) {
	assert.True(t, DigitalPending.CanTransition(DigitalProcessing))
	assert.True(t, DigitalProcessing.CanTransition(DigitalDone))
	assert.True(t, DigitalProcessing.CanTransition(DigitalFailed))
	// regenerate setelah gagal/selesai
	assert.True(t, DigitalFailed.CanTransition(DigitalProcessing))
	assert.True(t, DigitalDone.CanTransition(DigitalProcessing))

	assert.False(t, DigitalDone.CanTransition(DigitalFailed))
	assert.False(t, DigitalFailed.CanTransition(DigitalDone))
}
