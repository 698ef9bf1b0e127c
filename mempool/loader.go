// Package mempool reads the pending transaction records, one JSON file per
// transaction, from a directory.
package mempool

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/humblenginr/blockminer/errors"
	txn "github.com/humblenginr/blockminer/transaction"
	"github.com/humblenginr/blockminer/txnpicker"
	"github.com/humblenginr/blockminer/ulogger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultIndexFileName = "mempool.json"

// record is one mempool file. Fee is a pointer so a missing field can be told
// apart from a zero fee.
type record struct {
	Hex    string  `json:"hex"`
	Fee    *uint64 `json:"fee"`
	Weight uint64  `json:"weight"`
}

type Loader struct {
	logger        ulogger.Logger
	dirPath       string
	indexFileName string
}

func NewLoader(logger ulogger.Logger, dirPath string, indexFileName string) *Loader {
	if indexFileName == "" {
		indexFileName = DefaultIndexFileName
	}

	return &Loader{logger: logger, dirPath: dirPath, indexFileName: indexFileName}
}

// Load decodes every record file of the directory except the index file.
// Any unreadable or malformed record aborts the load.
func (l *Loader) Load() ([]txnpicker.CandidateRecord, error) {
	files, err := os.ReadDir(l.dirPath)
	if err != nil {
		return nil, errors.NewStorageError("failed to read mempool directory %s", l.dirPath, err)
	}

	records := make([]txnpicker.CandidateRecord, 0, len(files))
	totalWeight := uint64(0)

	for _, f := range files {
		if f.IsDir() || f.Name() == l.indexFileName {
			continue
		}

		txnPath := filepath.Join(l.dirPath, f.Name())
		l.logger.Debugf("loading %s", txnPath)

		candidate, err := l.loadRecord(txnPath)
		if err != nil {
			return nil, err
		}

		totalWeight += candidate.DeclaredWeight
		records = append(records, candidate)
	}

	l.logger.Infof("loaded %d transactions from %s, declared weight %d vbytes", len(records), l.dirPath, totalWeight)

	return records, nil
}

func (l *Loader) loadRecord(txnPath string) (txnpicker.CandidateRecord, error) {
	byteResult, err := os.ReadFile(txnPath)
	if err != nil {
		return txnpicker.CandidateRecord{}, errors.NewStorageError("failed to read %s", txnPath, err)
	}

	var r record
	if err = json.Unmarshal(byteResult, &r); err != nil {
		return txnpicker.CandidateRecord{}, errors.NewTxInvalidError("failed to parse %s", txnPath, err)
	}

	if r.Hex == "" {
		return txnpicker.CandidateRecord{}, errors.NewTxInvalidError("%s has no hex field", txnPath)
	}

	if r.Fee == nil {
		return txnpicker.CandidateRecord{}, errors.NewTxInvalidError("%s has no fee field", txnPath)
	}

	transaction, err := txn.NewTransactionFromHex(r.Hex)
	if err != nil {
		return txnpicker.CandidateRecord{}, errors.NewTxInvalidError("failed to decode transaction in %s", txnPath, err)
	}

	if vsize := transaction.VSize(); vsize != r.Weight {
		l.logger.Warnf("%s declares weight %d but transaction is %d vbytes", txnPath, r.Weight, vsize)
	}

	return txnpicker.CandidateRecord{Tx: transaction, Fee: *r.Fee, DeclaredWeight: r.Weight}, nil
}
