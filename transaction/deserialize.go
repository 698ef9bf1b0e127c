package transaction

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/humblenginr/blockminer/errors"
)

// smallest possible input, used to bound the input count
const minTxInPayload = 41

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// NewTransactionFromHex decodes a hex encoded raw transaction.
func NewTransactionFromHex(s string) (*Transaction, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewTxInvalidError("invalid transaction hex", err)
	}

	return NewTransactionFromBytes(b)
}

// NewTransactionFromBytes decodes a raw transaction and fails when bytes are
// left over after the locktime.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	r := bytes.NewReader(b)

	tx, err := Deserialize(r)
	if err != nil {
		return nil, err
	}

	if r.Len() != 0 {
		return nil, errors.NewTxInvalidError("%d trailing bytes after transaction", r.Len())
	}

	return tx, nil
}

// Deserialize reads a transaction in wire format, with or without the BIP144
// segwit marker and flag.
func Deserialize(r io.Reader) (*Transaction, error) {
	tx, err := deserialize(r)
	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, errors.NewTxInvalidError("malformed transaction", err)
	}

	return tx, nil
}

func deserialize(r io.Reader) (*Transaction, error) {
	version, err := readUint32(r)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{Version: int32(version)}

	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	// A zero input count is the segwit marker, the flag byte must follow.
	var flag [1]byte
	if count == 0 {
		if _, err = io.ReadFull(r, flag[:]); err != nil {
			return nil, err
		}

		if flag[0] != witnessFlag {
			return nil, errors.NewTxInvalidError("witness tx but flag byte is %x", flag[0])
		}

		if count, err = ReadVarInt(r); err != nil {
			return nil, err
		}
	}

	if count > maxTxSize/minTxInPayload {
		return nil, errors.NewTxInvalidError("too many input transactions to fit into max message size [count %d]", count)
	}

	tx.Vin = make([]Vin, count)
	for i := range tx.Vin {
		if err = readTxInput(r, &tx.Vin[i]); err != nil {
			return nil, err
		}
	}

	if count, err = ReadVarInt(r); err != nil {
		return nil, err
	}

	if count > maxTxSize/9 {
		return nil, errors.NewTxInvalidError("too many output transactions to fit into max message size [count %d]", count)
	}

	tx.Vout = make([]Vout, count)
	for i := range tx.Vout {
		if err = readTxOutput(r, &tx.Vout[i]); err != nil {
			return nil, err
		}
	}

	if flag[0] != 0 {
		for i := range tx.Vin {
			if tx.Vin[i].Witness, err = readTxWitness(r); err != nil {
				return nil, err
			}
		}

		if !tx.HasWitness() {
			return nil, errors.NewTxInvalidError("witness flag set but no witness data")
		}
	}

	if tx.Locktime, err = readUint32(r); err != nil {
		return nil, err
	}

	return tx, nil
}

func readTxInput(r io.Reader, ti *Vin) error {
	if _, err := io.ReadFull(r, ti.Txid[:]); err != nil {
		return err
	}

	var err error
	if ti.Vout, err = readUint32(r); err != nil {
		return err
	}

	if ti.ScriptSig, err = ReadVarBytes(r, maxTxSize, "transaction input signature script"); err != nil {
		return err
	}

	ti.Sequence, err = readUint32(r)
	return err
}

func readTxOutput(r io.Reader, to *Vout) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	to.Value = binary.LittleEndian.Uint64(buf[:])

	var err error
	to.ScriptPubKey, err = ReadVarBytes(r, maxTxSize, "transaction output public key script")
	return err
}

func readTxWitness(r io.Reader) ([][]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	if count > maxWitnessItemCount {
		return nil, errors.NewTxInvalidError("too many witness items to fit into max message size [count %d, max %d]", count, maxWitnessItemCount)
	}

	if count == 0 {
		return nil, nil
	}

	witness := make([][]byte, count)
	for i := range witness {
		if witness[i], err = ReadVarBytes(r, maxTxSize, "script witness item"); err != nil {
			return nil, err
		}
	}

	return witness, nil
}
