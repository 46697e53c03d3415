package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, validID("0f0a9a3e-9a45-4a77-8f60-2d5b7cde1a10"))

	// anything that cannot cast to uuid must be treated as a missing row,
	// not forwarded to the database
	assert.False(t, validID("missing"))
	assert.False(t, validID(""))
	assert.False(t, validID("0f0a9a3e-9a45-4a77-8f60"))
	assert.False(t, validID("'; DROP TABLE incidentes; --"))
}
