package transaction

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/humblenginr/blockminer/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// coinbase of block 0, legacy format
	genesisCoinbaseHex = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"

	// two inputs with p2wpkh-shaped witnesses, one of them nested in p2sh
	segwitTxHex = "02000000000102000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f0100000000fdffffff202122232425262728292a2b2c2d2e2f303132333435363738393a3b3c3d3e3f00000000171600141111111111111111111111111111111111111111ffffffff0250c30000000000001600142222222222222222222222222222222222222222d2040000000000001976a914333333333333333333333333333333333333333388ac024730303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030302102444444444444444444444444444444444444444444444444444444444444444402485555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555552103666666666666666666666666666666666666666666666666666666666666666600350c00"
)

func TestNewTransactionFromHex_Legacy(t *testing.T) {
	tx, err := NewTransactionFromHex(genesisCoinbaseHex)
	require.NoError(t, err)

	assert.Equal(t, int32(1), tx.Version)
	require.Len(t, tx.Vin, 1)
	require.Len(t, tx.Vout, 1)
	assert.True(t, tx.IsCoinbase())
	assert.False(t, tx.HasWitness())
	assert.Equal(t, MaxVoutIndex, tx.Vin[0].Vout)
	assert.Len(t, tx.Vin[0].ScriptSig, 0x4d)
	assert.Equal(t, uint64(5_000_000_000), tx.Vout[0].Value)

	txid := tx.TxHash()
	assert.Equal(t, "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b", txid.String())
	assert.Equal(t, txid, tx.WitnessHash())

	assert.Equal(t, 204, tx.SerializeSize())
	assert.Equal(t, 204, tx.SerializeSizeWithWitness())
	assert.Equal(t, uint64(816), tx.Weight())
	assert.Equal(t, uint64(204), tx.VSize())
	assert.Equal(t, genesisCoinbaseHex, hex.EncodeToString(tx.RawBytes()))
}

func TestNewTransactionFromHex_Segwit(t *testing.T) {
	tx, err := NewTransactionFromHex(segwitTxHex)
	require.NoError(t, err)

	assert.Equal(t, int32(2), tx.Version)
	assert.Equal(t, uint32(800000), tx.Locktime)
	require.Len(t, tx.Vin, 2)
	require.Len(t, tx.Vout, 2)
	assert.True(t, tx.HasWitness())
	assert.False(t, tx.IsCoinbase())
	assert.Equal(t, uint32(0xfffffffd), tx.Vin[0].Sequence)
	assert.Equal(t, byte(0x1f), tx.Vin[0].Txid[31])
	assert.Len(t, tx.Vin[1].ScriptSig, 23)
	require.Len(t, tx.Vin[1].Witness, 2)
	assert.Len(t, tx.Vin[1].Witness[0], 72)
	assert.Equal(t, uint64(50000), tx.Vout[0].Value)
	assert.Equal(t, uint64(1234), tx.Vout[1].Value)

	txid := tx.TxHash()
	wtxid := tx.WitnessHash()
	assert.Equal(t, "bc3ba6144fc360dd93e23d4cca44da60fda6e390d598d99ef5f18b2a72f597c1", txid.String())
	assert.Equal(t, "06b867353ff61d83ecbef965242c2eab305bcef54e39eea7b8f18be317f2c01c", wtxid.String())

	assert.Equal(t, 180, tx.SerializeSize())
	assert.Equal(t, 397, tx.SerializeSizeWithWitness())
	assert.Equal(t, uint64(937), tx.Weight())
	assert.Equal(t, uint64(235), tx.VSize())
	assert.Equal(t, segwitTxHex, hex.EncodeToString(tx.RawBytes()))
}

func TestSerialize_WithoutWitnessDropsMarker(t *testing.T) {
	tx, err := NewTransactionFromHex(segwitTxHex)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(false, &buf))
	assert.Len(t, buf.Bytes(), tx.SerializeSize())

	stripped, err := NewTransactionFromBytes(buf.Bytes())
	require.NoError(t, err)
	assert.False(t, stripped.HasWitness())
	assert.Equal(t, tx.TxHash(), stripped.TxHash())
}

func TestNewTransactionFromHex_Errors(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"not hex", "zz"},
		{"empty", ""},
		{"truncated", genesisCoinbaseHex[:100]},
		{"trailing bytes", genesisCoinbaseHex + "00"},
		{"bad witness flag", "0100000000020100000000"},
		{"huge input count", "01000000fe00000001"},
		{"non-canonical varint", "01000000fd0100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransactionFromHex(tt.hex)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrTxInvalid), err.Error())
		})
	}
}

func TestVarInt_RoundTripBoundaries(t *testing.T) {
	for _, v := range []uint64{0, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000} {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v))
		assert.Len(t, buf.Bytes(), VarIntSerializeSize(v))

		got, err := ReadVarInt(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadVarBytes_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarBytes(&buf, make([]byte, 10)))

	_, err := ReadVarBytes(&buf, 5, "script")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTxInvalid))
}
