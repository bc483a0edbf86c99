package voucher

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/wifidesa/voucher-api/internal/profile"
)

// GenerateCredential produces a decimal voucher code of the given digit
// length, uniformly drawn from [10^(L-1), 10^L - 1]. Length is clamped to
// [3,12]. The password of an issued voucher equals its username, so one
// code is all a customer needs.
//
// No uniqueness is guaranteed here; the ledger's unique constraint on the
// username rejects collisions at persistence time and the orchestrator
// regenerates.
func GenerateCredential(length int) (string, error) {
	length = profile.ClampCodeLength(length)

	lo := int64(1)
	for i := 1; i < length; i++ {
		lo *= 10
	}
	span := lo*10 - lo // count of L-digit numbers

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", fmt.Errorf("failed to draw random credential: %w", err)
	}

	return strconv.FormatInt(lo+n.Int64(), 10), nil
}
