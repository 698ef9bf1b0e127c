package transaction

import (
	"encoding/binary"
	"io"
)

const (
	witnessMarker byte = 0x00
	witnessFlag   byte = 0x01
)

// SerializeWitnessSize returns the size of a single input's witness stack.
func SerializeWitnessSize(witness [][]byte) int {
	// A varint to signal the number of elements the witness has.
	n := VarIntSerializeSize(uint64(len(witness)))

	// For each element in the witness, we'll need a varint to signal the
	// size of the element, then finally the number of bytes the element
	// itself comprises.
	for _, witItem := range witness {
		n += VarIntSerializeSize(uint64(len(witItem)))
		n += len(witItem)
	}
	return n
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func SerializeAndWriteTxOutput(w io.Writer, to Vout) error {
	// value
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], to.Value)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	// pubkey script
	return WriteVarBytes(w, to.ScriptPubKey)
}

func serializeAndWriteTxInput(w io.Writer, ti Vin) error {
	// reference output transaction id, internal byte order
	if _, err := w.Write(ti.Txid[:]); err != nil {
		return err
	}
	// reference output transaction index
	if err := writeUint32(w, ti.Vout); err != nil {
		return err
	}
	// signature script
	if err := WriteVarBytes(w, ti.ScriptSig); err != nil {
		return err
	}
	// sequence number
	return writeUint32(w, ti.Sequence)
}

// Serialize writes the transaction in wire format. With includeWitness the
// BIP144 marker, flag and witness stacks are written when the transaction
// carries any witness data.
// I am also currently referencing the implementation from btcd golang repository - https://github.com/btcsuite/btcd
func (t *Transaction) Serialize(includeWitness bool, w io.Writer) error {
	doWitness := includeWitness && t.HasWitness()

	// nVersion
	if err := writeUint32(w, uint32(t.Version)); err != nil {
		return err
	}
	// witness
	if doWitness {
		if _, err := w.Write([]byte{witnessMarker, witnessFlag}); err != nil {
			return err
		}
	}
	// input count
	if err := WriteVarInt(w, uint64(len(t.Vin))); err != nil {
		return err
	}
	// serialize all the transaction inputs
	for _, ti := range t.Vin {
		if err := serializeAndWriteTxInput(w, ti); err != nil {
			return err
		}
	}
	// output count
	if err := WriteVarInt(w, uint64(len(t.Vout))); err != nil {
		return err
	}
	// serialize all the transaction outputs
	for _, to := range t.Vout {
		if err := SerializeAndWriteTxOutput(w, to); err != nil {
			return err
		}
	}
	if doWitness {
		for _, ti := range t.Vin {
			if err := writeTxWitness(w, ti.Witness); err != nil {
				return err
			}
		}
	}
	// locktime
	return writeUint32(w, t.Locktime)
}

func writeTxWitness(w io.Writer, wit [][]byte) error {
	err := WriteVarInt(w, uint64(len(wit)))
	if err != nil {
		return err
	}
	for _, item := range wit {
		err = WriteVarBytes(w, item)
		if err != nil {
			return err
		}
	}
	return nil
}
