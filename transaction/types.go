package transaction

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
)

const (
	// WitnessScaleFactor is how much more a non-witness byte weighs than a witness byte.
	WitnessScaleFactor = 4

	// MaxVoutIndex marks the null previous output of a coinbase input.
	MaxVoutIndex uint32 = 0xffffffff

	// caps against hostile counts while decoding
	maxTxSize           = 4_000_000
	maxWitnessItemCount = 1 << 16
)

type Vout struct {
	Value        uint64
	ScriptPubKey []byte
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction output.
func (o *Vout) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of ScriptPubKey +
	// ScriptPubKey bytes.
	return 8 + VarIntSerializeSize(uint64(len(o.ScriptPubKey))) + len(o.ScriptPubKey)
}

func (v Vout) String() string {
	return fmt.Sprintf("(scriptpubkey: %x, value: %d)", v.ScriptPubKey, v.Value)
}

type Vin struct {
	// Txid is kept in internal byte order, String() gives the display form.
	Txid chainhash.Hash
	// this is the index of the output
	Vout      uint32
	ScriptSig []byte
	Witness   [][]byte
	Sequence  uint32
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction input, witness excluded.
func (i *Vin) SerializeSize() int {
	// Txid 32 bytes + Vout 4 bytes + Sequence 4 bytes +
	// serialized varint size for the length of ScriptSig +
	// SignatureScript bytes.
	return 40 + VarIntSerializeSize(uint64(len(i.ScriptSig))) + len(i.ScriptSig)
}

func (v Vin) String() string {
	return fmt.Sprintf("(txid: %s, vout: %d, scriptsig: %x, witness: %x, sequence: %d)", v.Txid, v.Vout, v.ScriptSig, v.Witness, v.Sequence)
}

// IsNullPrevOut reports whether the input spends nothing, as a coinbase input does.
func (v Vin) IsNullPrevOut() bool {
	return v.Vout == MaxVoutIndex && v.Txid == (chainhash.Hash{})
}

type Transaction struct {
	Version  int32
	Locktime uint32
	Vin      []Vin
	Vout     []Vout
}

func (t *Transaction) HasWitness() bool {
	for _, txIn := range t.Vin {
		if len(txIn.Witness) != 0 {
			return true
		}
	}
	return false
}

func (t *Transaction) IsCoinbase() bool {
	return len(t.Vin) == 1 && t.Vin[0].IsNullPrevOut()
}

func (t Transaction) String() string {
	return fmt.Sprintf("Version: %d \nLocktime: %d \nVin: %s \nVout: %s", t.Version, t.Locktime, t.Vin, t.Vout)
}
