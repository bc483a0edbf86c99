package voucher

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCredentialLength(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		wantDigits int
	}{
		{name: "minimum length", length: 3, wantDigits: 3},
		{name: "default length", length: 4, wantDigits: 4},
		{name: "maximum length", length: 12, wantDigits: 12},
		{name: "zero defaults to 4", length: 0, wantDigits: 4},
		{name: "below minimum clamps to 3", length: 1, wantDigits: 3},
		{name: "above maximum clamps to 12", length: 99, wantDigits: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := GenerateCredential(tt.length)
			require.NoError(t, err)
			assert.Len(t, code, tt.wantDigits)

			n, err := strconv.ParseInt(code, 10, 64)
			require.NoError(t, err, "credential must be numeric")
			assert.GreaterOrEqual(t, n, pow10(tt.wantDigits-1))
			assert.LessOrEqual(t, n, pow10(tt.wantDigits)-1)
		})
	}
}

func TestGenerateCredentialRange(t *testing.T) {
	// Repeated draws stay inside [1000, 9999] and never lose the leading digit
	for i := 0; i < 200; i++ {
		code, err := GenerateCredential(4)
		require.NoError(t, err)

		n, err := strconv.ParseInt(code, 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1000))
		assert.LessOrEqual(t, n, int64(9999))
	}
}

func pow10(exp int) int64 {
	n := int64(1)
	for i := 0; i < exp; i++ {
		n *= 10
	}
	return n
}
