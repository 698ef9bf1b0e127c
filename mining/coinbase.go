package mining

import (
	"math"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/humblenginr/blockminer/errors"
	txn "github.com/humblenginr/blockminer/transaction"
)

const (
	CoinbaseTransactionVersion int32 = 1

	opCheckSig byte = 0xac
)

// WitnessReserveValue is the single witness item of the coinbase input.
var WitnessReserveValue = [32]byte{}

// ReceiveScript builds a pay-to-pubkey script for the compressed public key
// of privKey.
func ReceiveScript(privKey []byte) ([]byte, error) {
	var k secp.ModNScalar
	if overflow := k.SetByteSlice(privKey); overflow || k.IsZero() || len(privKey) != 32 {
		return nil, errors.NewConfigurationError("coinbase private key is not a valid secp256k1 scalar")
	}

	pubKey := secp.NewPrivateKey(&k).PubKey().SerializeCompressed()

	script := make([]byte, 0, len(pubKey)+2)
	script = append(script, byte(len(pubKey)))
	script = append(script, pubKey...)
	script = append(script, opCheckSig)

	return script, nil
}

// CoinbaseScriptSig is the text prefixed with its length.
func CoinbaseScriptSig(text string) []byte {
	scriptSig := make([]byte, 0, len(text)+1)
	scriptSig = append(scriptSig, byte(len(text)))
	return append(scriptSig, text...)
}

// NewCoinbaseTransaction builds the first transaction of the block. The first
// output is reserved for a witness commitment and stays empty, the second pays
// the subsidy to the configured key.
func NewCoinbaseTransaction(cfg *Config) (*txn.Transaction, error) {
	receiveScript, err := ReceiveScript(cfg.CoinbasePrivateKey)
	if err != nil {
		return nil, err
	}

	vin := txn.Vin{
		Txid:      chainhash.Hash{},
		Vout:      txn.MaxVoutIndex,
		ScriptSig: CoinbaseScriptSig(cfg.CoinbaseText),
		Witness:   [][]byte{WitnessReserveValue[:]},
		Sequence:  math.MaxUint32,
	}

	return &txn.Transaction{
		Version:  CoinbaseTransactionVersion,
		Locktime: 0,
		Vin:      []txn.Vin{vin},
		Vout: []txn.Vout{
			{Value: 0, ScriptPubKey: []byte{}},
			{Value: cfg.BlockSubsidy, ScriptPubKey: receiveScript},
		},
	}, nil
}
