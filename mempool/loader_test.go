package mempool

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/humblenginr/blockminer/errors"
	"github.com/humblenginr/blockminer/txnpicker"
	"github.com/humblenginr/blockminer/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// legacy coinbase of block 0, 204 vbytes
	legacyTxHex = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"

	// 235 vbytes
	segwitTxHex = "02000000000102000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f0100000000fdffffff202122232425262728292a2b2c2d2e2f303132333435363738393a3b3c3d3e3f00000000171600141111111111111111111111111111111111111111ffffffff0250c30000000000001600142222222222222222222222222222222222222222d2040000000000001976a914333333333333333333333333333333333333333388ac024730303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030302102444444444444444444444444444444444444444444444444444444444444444402485555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555555552103666666666666666666666666666666666666666666666666666666666666666600350c00"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func writeRecord(t *testing.T, dir, name, txHex string, fee, weight uint64) {
	t.Helper()
	writeFile(t, dir, name, fmt.Sprintf(`{"hex": %q, "fee": %d, "weight": %d}`, txHex, fee, weight))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.json", segwitTxHex, 4700, 235)
	writeRecord(t, dir, "b.json", legacyTxHex, 2040, 204)
	writeFile(t, dir, DefaultIndexFileName, `["a", "b"]`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	records, err := NewLoader(ulogger.TestLogger{}, dir, "").Load()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// directory order
	assert.Equal(t, uint64(4700), records[0].Fee)
	assert.Equal(t, uint64(235), records[0].DeclaredWeight)
	assert.True(t, records[0].Tx.HasWitness())
	assert.Equal(t, uint64(2040), records[1].Fee)
	assert.False(t, records[1].Tx.HasWitness())

	rate, err := records[0].FeeRate()
	require.NoError(t, err)
	assert.Equal(t, uint64(20), rate)
}

func TestLoader_DeclaredWeightIsNotTrusted(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.json", legacyTxHex, 2040, 1)

	records, err := NewLoader(ulogger.TestLogger{}, dir, DefaultIndexFileName).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, uint64(1), records[0].DeclaredWeight)
	rate, err := records[0].FeeRate()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), rate)
}

func TestLoader_CustomIndexName(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.json", legacyTxHex, 1, 204)
	writeFile(t, dir, "index.json", `not a record`)

	records, err := NewLoader(ulogger.TestLogger{}, dir, "index.json").Load()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoader_Empty(t *testing.T) {
	records, err := NewLoader(ulogger.TestLogger{}, t.TempDir(), "").Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    error
	}{
		{"bad json", `{"hex": `, errors.ErrTxInvalid},
		{"missing hex", `{"fee": 1, "weight": 1}`, errors.ErrTxInvalid},
		{"missing fee", fmt.Sprintf(`{"hex": %q, "weight": 204}`, legacyTxHex), errors.ErrTxInvalid},
		{"bad hex", `{"hex": "xyz", "fee": 1, "weight": 1}`, errors.ErrTxInvalid},
		{"malformed tx", `{"hex": "0100000001", "fee": 1, "weight": 1}`, errors.ErrTxInvalid},
		{"negative fee", fmt.Sprintf(`{"hex": %q, "fee": -5, "weight": 204}`, legacyTxHex), errors.ErrTxInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRecord(t, dir, "good.json", legacyTxHex, 1, 204)
			writeFile(t, dir, "z.json", tt.content)

			_, err := NewLoader(ulogger.TestLogger{}, dir, "").Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), err.Error())
		})
	}
}

func TestLoader_MissingDirectory(t *testing.T) {
	_, err := NewLoader(ulogger.TestLogger{}, filepath.Join(t.TempDir(), "nope"), "").Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStorage))
}

func TestLoader_FeedsPicker(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.json", legacyTxHex, 2040, 204)
	writeRecord(t, dir, "b.json", segwitTxHex, 4700, 235)

	picker := txnpicker.NewTransactionPicker(ulogger.TestLogger{}, NewLoader(ulogger.TestLogger{}, dir, ""), 100)
	txns, err := picker.Pick()
	require.NoError(t, err)

	// 20 sat/vb beats 10 sat/vb, and the budget stops after the first one
	require.Len(t, txns, 1)
	assert.True(t, txns[0].HasWitness())
}
