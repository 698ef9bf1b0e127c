package mining

import (
	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/humblenginr/blockminer/errors"
	txn "github.com/humblenginr/blockminer/transaction"
)

// GenerateMerkleTreeRoot reduces txids pairwise with double SHA256. An odd
// last node is paired with itself.
func GenerateMerkleTreeRoot(txids []chainhash.Hash) (chainhash.Hash, error) {
	if len(txids) == 0 {
		return chainhash.Hash{}, errors.NewBlockInvalidError("cannot compute merkle root without transactions")
	}

	level := make([]chainhash.Hash, len(txids))
	copy(level, txids)

	var x [2 * chainhash.HashSize]byte
	for len(level) > 1 {
		nextLevel := make([]chainhash.Hash, 0, (len(level)+1)/2)

		for i := 0; i < len(level); i += 2 {
			copy(x[:chainhash.HashSize], level[i][:])
			if i+1 == len(level) {
				// In case of an odd number of elements, duplicate the last one
				copy(x[chainhash.HashSize:], level[i][:])
			} else {
				copy(x[chainhash.HashSize:], level[i+1][:])
			}
			nextLevel = append(nextLevel, chainhash.DoubleHashH(x[:]))
		}

		level = nextLevel
	}

	return level[0], nil
}

// CalcMerkleRoot is the commitment root over the txids of txns.
func CalcMerkleRoot(txns []*txn.Transaction) (chainhash.Hash, error) {
	txids := make([]chainhash.Hash, 0, len(txns))
	for _, t := range txns {
		txids = append(txids, t.TxHash())
	}

	return GenerateMerkleTreeRoot(txids)
}
