package mining

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/humblenginr/blockminer/errors"
	txn "github.com/humblenginr/blockminer/transaction"
)

const BlockHeaderSize = 80

// Data types taken from: https://developer.bitcoin.org/reference/block_chain.html
type BlockHeader struct {
	Version       int32
	PrevBlockHash chainhash.Hash
	MerkleRoot    chainhash.Hash
	// Unix timestamp
	Time uint32
	// Compact representation of difficulty target
	Bits  uint32
	Nonce uint32
}

func (bh *BlockHeader) Serialize(w io.Writer) error {
	_, err := w.Write(bh.Bytes())
	return err
}

// Bytes is the 80 byte wire form of the header.
func (bh *BlockHeader) Bytes() []byte {
	buf := make([]byte, BlockHeaderSize)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(bh.Version))
	copy(buf[4:36], bh.PrevBlockHash[:])
	copy(buf[36:68], bh.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], bh.Time)
	binary.LittleEndian.PutUint32(buf[72:76], bh.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], bh.Nonce)

	return buf
}

// Hash is the double SHA256 of the serialized header, internal byte order.
func (bh *BlockHeader) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(bh.Bytes())
}

func NewBlockHeaderFromBytes(b []byte) (*BlockHeader, error) {
	if len(b) != BlockHeaderSize {
		return nil, errors.NewBlockInvalidError("block header should be %d bytes long, got %d", BlockHeaderSize, len(b))
	}

	bh := &BlockHeader{
		Version: int32(binary.LittleEndian.Uint32(b[0:4])),
		Time:    binary.LittleEndian.Uint32(b[68:72]),
		Bits:    binary.LittleEndian.Uint32(b[72:76]),
		Nonce:   binary.LittleEndian.Uint32(b[76:80]),
	}
	copy(bh.PrevBlockHash[:], b[4:36])
	copy(bh.MerkleRoot[:], b[36:68])

	return bh, nil
}

// Block keeps the coinbase as the first of its transactions.
type Block struct {
	BlockHeader  BlockHeader
	Transactions []*txn.Transaction
}

func (b *Block) Coinbase() *txn.Transaction {
	if len(b.Transactions) == 0 {
		return nil
	}
	return b.Transactions[0]
}

// CheckMerkleRoot recomputes the root over the transactions and compares it
// with the header.
func (b *Block) CheckMerkleRoot() error {
	root, err := CalcMerkleRoot(b.Transactions)
	if err != nil {
		return err
	}

	if root != b.BlockHeader.MerkleRoot {
		return errors.NewBlockInvalidError("merkle root mismatch: header %s, computed %s", b.BlockHeader.MerkleRoot, root)
	}

	return nil
}

// VSize is the block payload in vbytes, coinbase included.
func (b *Block) VSize() uint64 {
	total := uint64(0)
	for _, t := range b.Transactions {
		total += t.VSize()
	}
	return total
}

// Write emits the block as text:
// first line the block header, second line the serialized coinbase
// transaction, then the txids in block order starting with the coinbase.
func (b *Block) Write(w io.Writer) error {
	coinbase := b.Coinbase()
	if coinbase == nil {
		return errors.NewBlockInvalidError("block has no coinbase transaction")
	}

	bw := bufio.NewWriter(w)

	// Block header
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderSize))
	if err := b.BlockHeader.Serialize(buf); err != nil {
		return err
	}
	if _, err := bw.WriteString(hex.EncodeToString(buf.Bytes()) + "\n"); err != nil {
		return err
	}

	// Serialized coinbase transaction
	if _, err := bw.WriteString(hex.EncodeToString(coinbase.RawBytes()) + "\n"); err != nil {
		return err
	}

	for _, t := range b.Transactions {
		txid := t.TxHash()
		if _, err := bw.WriteString(txid.String() + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func (b *Block) WriteToFile(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.NewStorageError("failed to create %s", filePath, err)
	}
	defer f.Close()

	if err = b.Write(f); err != nil {
		return errors.NewStorageError("failed to write block to %s", filePath, err)
	}

	if err = f.Close(); err != nil {
		return errors.NewStorageError("failed to close %s", filePath, err)
	}

	return nil
}
