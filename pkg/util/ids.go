package util

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
)

// IDGenerator produces order id tokens. The default uses a random source;
// tests substitute a fixed generator.
type IDGenerator func() string

const orderIDLength = 9

// NewOrderID generates a 9 character base-36 order token.
func NewOrderID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// fall back to a zero token rather than panic in a mock flow.
		return "000000000"
	}
	id := strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 36)
	for len(id) < orderIDLength {
		id = "0" + id
	}
	return id[:orderIDLength]
}
