package mining

import (
	"math/big"

	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/humblenginr/blockminer/errors"
	"github.com/humblenginr/blockminer/settings"
)

// AcceptFunc decides whether a header hash, internal byte order, wins.
type AcceptFunc func(hash *chainhash.Hash) bool

// HasTwoZeroBytes accepts a hash whose last two internal bytes are zero, which
// is the leading "0000" of the displayed hash.
func HasTwoZeroBytes(hash *chainhash.Hash) bool {
	return hash[30] == 0 && hash[31] == 0
}

// MeetsTarget accepts a hash whose value is at most the target encoded in bits.
func MeetsTarget(bits uint32) AcceptFunc {
	target := NbitsToTarget(bits)

	return func(hash *chainhash.Hash) bool {
		return HashToBig((*[32]byte)(hash)).Cmp(target) <= 0
	}
}

// NewAcceptFunc maps a configured pow check name to its predicate.
func NewAcceptFunc(powCheck string, bits uint32) (AcceptFunc, error) {
	switch powCheck {
	case settings.PowCheckTwoZeroBytes, "":
		return HasTwoZeroBytes, nil
	case settings.PowCheckTarget:
		return MeetsTarget(bits), nil
	default:
		return nil, errors.NewConfigurationError("unknown pow check %q", powCheck)
	}
}

func HashToBig(hash *[32]byte) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}

	return new(big.Int).SetBytes(buf[:])
}

// Implemented following https://developer.bitcoin.org/reference/block_chain.html
func NbitsToTarget(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// Implemented following https://developer.bitcoin.org/reference/block_chain.html
func TargetToNbits(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		// Use a copy to avoid modifying the caller's original number.
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// the sign bit would be set otherwise
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}

	return compact
}
