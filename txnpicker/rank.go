package txnpicker

import (
	"slices"

	txn "github.com/humblenginr/blockminer/transaction"
)

// SortByFeeRate returns the records ordered by descending fee rate. Equal
// rates keep their input order.
func SortByFeeRate(records []CandidateRecord) ([]CandidateRecord, error) {
	type ranked struct {
		record CandidateRecord
		rate   uint64
	}

	r := make([]ranked, len(records))
	for i, record := range records {
		rate, err := record.FeeRate()
		if err != nil {
			return nil, err
		}
		r[i] = ranked{record: record, rate: rate}
	}

	slices.SortStableFunc(r, func(a, b ranked) int {
		switch {
		case a.rate > b.rate:
			return -1
		case a.rate < b.rate:
			return 1
		default:
			return 0
		}
	})

	sorted := make([]CandidateRecord, len(r))
	for i := range r {
		sorted[i] = r[i].record
	}

	return sorted, nil
}

// Cull walks the ranked records and stops once the running vsize goes over
// maxVBytes. The record that crosses the limit is still included.
func Cull(records []CandidateRecord, maxVBytes uint64) []*txn.Transaction {
	txns := make([]*txn.Transaction, 0, len(records))
	totalWeight := uint64(0)

	for _, record := range records {
		totalWeight += record.Tx.VSize()
		txns = append(txns, record.Tx)
		if totalWeight > maxVBytes {
			break
		}
	}

	return txns
}

// SortByWeight orders transactions heaviest first.
func SortByWeight(txns []*txn.Transaction) {
	slices.SortStableFunc(txns, func(a, b *txn.Transaction) int {
		wa, wb := a.Weight(), b.Weight()
		switch {
		case wa > wb:
			return -1
		case wa < wb:
			return 1
		default:
			return 0
		}
	})
}

// TotalVSize sums the vsize of txns.
func TotalVSize(txns []*txn.Transaction) uint64 {
	total := uint64(0)
	for _, t := range txns {
		total += t.VSize()
	}
	return total
}
