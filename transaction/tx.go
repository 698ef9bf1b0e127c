package transaction

import (
	"bytes"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/humblenginr/blockminer/utils"
)

// SerializeSize returns the serialized size of the transaction without
// accounting for any witness data.
func (t *Transaction) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(t.Vin))) +
		VarIntSerializeSize(uint64(len(t.Vout)))

	for _, txIn := range t.Vin {
		n += txIn.SerializeSize()
	}

	for _, txOut := range t.Vout {
		n += txOut.SerializeSize()
	}

	return n
}

// SerializeSizeWithWitness is the size of RawBytes.
func (t *Transaction) SerializeSizeWithWitness() int {
	n := t.SerializeSize()
	if !t.HasWitness() {
		return n
	}

	// The marker, and flag fields take up two additional bytes.
	n += 2
	for _, txIn := range t.Vin {
		n += SerializeWitnessSize(txIn.Witness)
	}

	return n
}

// Weight is base size times three plus total size (BIP141).
func (t *Transaction) Weight() uint64 {
	base := uint64(t.SerializeSize())
	total := uint64(t.SerializeSizeWithWitness())

	return base*(WitnessScaleFactor-1) + total
}

// VSize is the weight in virtual bytes, rounded up.
func (t *Transaction) VSize() uint64 {
	return (t.Weight() + WitnessScaleFactor - 1) / WitnessScaleFactor
}

func (t *Transaction) serialized(includeWitness bool) []byte {
	w := bytes.NewBuffer(make([]byte, 0, t.SerializeSizeWithWitness()))
	// bytes.Buffer writes never fail
	_ = t.Serialize(includeWitness, w)
	return w.Bytes()
}

// RawBytes gives the serialized transaction with witness data if any.
func (t *Transaction) RawBytes() []byte {
	return t.serialized(true)
}

// TxHash is the txid, witness data is not part of it.
func (t *Transaction) TxHash() chainhash.Hash {
	return utils.DoubleHashRaw(t.serialized(false))
}

// WitnessHash is the wtxid, equal to TxHash for non-witness transactions.
func (t *Transaction) WitnessHash() chainhash.Hash {
	return utils.DoubleHashRaw(t.serialized(true))
}
