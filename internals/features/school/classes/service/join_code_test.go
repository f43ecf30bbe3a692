// file: internals/features/school/classes/service/join_code_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "A1B2C3", NormalizeCode(" a1b2c3 "))
	assert.Equal(t, "A1B2C3", NormalizeCode("A1B2C3"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestRandomCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		require.Len(t, code, codeLength)
		for _, r := range code {
			assert.Contains(t, codeCharset, string(r))
		}
		seen[code] = true
	}
	// 50 draws from a 36^6 space should never collide
	assert.Greater(t, len(seen), 45)
}
