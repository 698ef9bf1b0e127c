package mining

import (
	"time"

	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/humblenginr/blockminer/errors"
	"github.com/humblenginr/blockminer/settings"
	txn "github.com/humblenginr/blockminer/transaction"
)

// Config holds the constants that go into the coinbase and the header.
type Config struct {
	BlockVersion       int32
	PrevBlockHash      chainhash.Hash
	Bits               uint32
	CoinbaseText       string
	CoinbasePrivateKey []byte
	BlockSubsidy       uint64
}

func NewConfig(s *settings.Settings) (*Config, error) {
	prev, err := s.PrevBlockHashBytes()
	if err != nil {
		return nil, err
	}

	target, err := s.Target()
	if err != nil {
		return nil, err
	}

	key, err := s.PrivateKeyBytes()
	if err != nil {
		return nil, err
	}

	return &Config{
		BlockVersion:       s.BlockVersion,
		PrevBlockHash:      prev,
		Bits:               TargetToNbits(target),
		CoinbaseText:       s.CoinbaseText,
		CoinbasePrivateKey: key,
		BlockSubsidy:       s.BlockSubsidy,
	}, nil
}

// AssembleBlock puts coinbase in front of txns and fills the header. The
// nonce starts at zero.
func AssembleBlock(cfg *Config, coinbase *txn.Transaction, txns []*txn.Transaction, now time.Time) (*Block, error) {
	initPrometheusMetrics()

	if coinbase == nil || !coinbase.IsCoinbase() {
		return nil, errors.NewBlockInvalidError("first transaction of a block must be a coinbase")
	}

	transactions := make([]*txn.Transaction, 0, len(txns)+1)
	transactions = append(transactions, coinbase)
	transactions = append(transactions, txns...)

	merkleRoot, err := CalcMerkleRoot(transactions)
	if err != nil {
		return nil, err
	}

	prometheusBlockAssembled.Inc()
	prometheusBlockTransactions.Set(float64(len(transactions)))

	return &Block{
		BlockHeader: BlockHeader{
			Version:       cfg.BlockVersion,
			PrevBlockHash: cfg.PrevBlockHash,
			MerkleRoot:    merkleRoot,
			Time:          uint32(now.Unix()),
			Bits:          cfg.Bits,
			Nonce:         0,
		},
		Transactions: transactions,
	}, nil
}

// GetCandidateBlock builds the coinbase from cfg and assembles the block around txns.
func GetCandidateBlock(cfg *Config, txns []*txn.Transaction, now time.Time) (*Block, error) {
	coinbase, err := NewCoinbaseTransaction(cfg)
	if err != nil {
		return nil, err
	}

	return AssembleBlock(cfg, coinbase, txns, now)
}
