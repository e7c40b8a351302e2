package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// JoinCodeLength is the number of characters in a team join code
const JoinCodeLength = 6

// joinCodeAlphabet is the character set join codes are drawn from
const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateJoinCode generates a random join code of JoinCodeLength characters
// drawn uniformly from [A-Z0-9]. Uniqueness against existing codes is the
// caller's concern (insert and retry on conflict).
func GenerateJoinCode() (string, error) {
	result := make([]byte, JoinCodeLength)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(joinCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		result[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(result), nil
}
