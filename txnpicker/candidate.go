package txnpicker

import (
	"github.com/humblenginr/blockminer/errors"
	txn "github.com/humblenginr/blockminer/transaction"
)

// CandidateRecord carries the selection-phase metadata of a mempool
// transaction. It is dropped once the transaction is picked for the block.
type CandidateRecord struct {
	Tx  *txn.Transaction
	Fee uint64
	// DeclaredWeight is what the record claimed, in vbytes. Selection always
	// uses the weight recomputed from Tx.
	DeclaredWeight uint64
}

// FeeRate is fee per vbyte, truncated.
func (c CandidateRecord) FeeRate() (uint64, error) {
	if c.Tx == nil {
		return 0, errors.NewProcessingError("cannot compute fee rate of a record without a transaction")
	}

	vsize := c.Tx.VSize()
	if vsize == 0 {
		return 0, errors.NewProcessingError("cannot compute fee rate of a zero weight transaction")
	}

	return c.Fee / vsize, nil
}

// Source yields the candidate records, a mempool directory for instance.
type Source interface {
	Load() ([]CandidateRecord, error)
}
