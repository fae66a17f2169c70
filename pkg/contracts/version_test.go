package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "fiipulse v"+Version, VersionString())

	full := FullVersionString()
	assert.Contains(t, full, VersionString())
	assert.Contains(t, full, LedgerFormatVersion)
	assert.Contains(t, full, BuildTime)
	assert.Contains(t, full, GitCommit)
}
