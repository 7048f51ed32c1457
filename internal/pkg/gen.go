package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const roomIDLimit = 100000000

// GenerateRoomID - generates a zero-padded 8 digit room id that players can share.
func GenerateRoomID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(roomIDLimit))
	if err != nil {
		return "", fmt.Errorf("failed to generate room id: %w", err)
	}

	return fmt.Sprintf("%08d", n.Int64()), nil
}

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
