package txnpicker

import (
	txn "github.com/humblenginr/blockminer/transaction"
	"github.com/humblenginr/blockminer/ulogger"
)

// DefaultMaxTotalVBytes is the block budget.
const DefaultMaxTotalVBytes uint64 = 1_000_000

type TransactionsPicker struct {
	source         Source
	MaxTotalVBytes uint64
	logger         ulogger.Logger
}

func NewTransactionPicker(logger ulogger.Logger, source Source, maxTotalVBytes uint64) *TransactionsPicker {
	return &TransactionsPicker{source: source, MaxTotalVBytes: maxTotalVBytes, logger: logger}
}

// Pick loads the candidates, ranks them by fee rate and culls them to the
// block budget. Fee metadata does not survive this step.
func (tp *TransactionsPicker) Pick() ([]*txn.Transaction, error) {
	records, err := tp.source.Load()
	if err != nil {
		return nil, err
	}

	ranked, err := SortByFeeRate(records)
	if err != nil {
		return nil, err
	}

	txns := Cull(ranked, tp.MaxTotalVBytes)

	tp.logger.Infof("picked %d of %d transactions, %d vbytes (budget %d)", len(txns), len(records), TotalVSize(txns), tp.MaxTotalVBytes)

	return txns, nil
}
