package job

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	shortIDLength = 12
	crockfordBase = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	// maxIDAttempts bounds retries when a generated id collides.
	maxIDAttempts = 16
)

// NewID returns a fresh application id for which taken reports false.
//
// Ids are 12-char Crockford base32 strings cut from the random bits of a
// UUIDv7, short enough to type on the command line.
func NewID(taken func(id string) bool) (string, error) {
	for range maxIDAttempts {
		u, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generate uuidv7: %w", err)
		}

		id := shortIDFromUUIDBits(u)
		if taken == nil || !taken(id) {
			return id, nil
		}
	}

	return "", ErrIDGenerationFailed
}

func encodeCrockfordBase32(value uint64) string {
	var buf [shortIDLength]byte
	for i := shortIDLength - 1; i >= 0; i-- {
		buf[i] = crockfordBase[value&0x1f]
		value >>= 5
	}

	return string(buf[:])
}

func shortIDFromUUIDBits(id uuid.UUID) string {
	// UUIDv7 layout (RFC 9562): 48-bit time, 4-bit version, 12-bit rand_a,
	// 2-bit variant, 62-bit rand_b. We use the high 60 random bits.
	randA := (uint16(id[6]&0x0f) << 8) | uint16(id[7])
	randB := (uint64(id[8]&0x3f) << 56) |
		(uint64(id[9]) << 48) |
		(uint64(id[10]) << 40) |
		(uint64(id[11]) << 32) |
		(uint64(id[12]) << 24) |
		(uint64(id[13]) << 16) |
		(uint64(id[14]) << 8) |
		uint64(id[15])

	top60 := (uint64(randA) << 48) | (randB >> 14)

	return encodeCrockfordBase32(top60)
}
