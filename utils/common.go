package utils

import (
	"encoding/hex"

	"github.com/bsv-blockchain/go-sdk/chainhash"
)

func DoubleHash(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// DoubleHashRaw is DoubleHash returned as a chainhash in internal byte order.
func DoubleHashRaw(b []byte) chainhash.Hash {
	return chainhash.DoubleHashH(b)
}

func Hash(b []byte) []byte {
	return chainhash.HashB(b)
}

// ReverseBytes reverses s in place and returns it.
func ReverseBytes(s []byte) []byte {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}

// RawHashFromHex parses 32 bytes of hex kept in internal (wire) byte order,
// unlike chainhash's display form which is reversed.
func RawHashFromHex(s string) (chainhash.Hash, error) {
	var h chainhash.Hash

	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}

	if err = h.SetBytes(b); err != nil {
		return h, err
	}

	return h, nil
}
