// Package settings holds every constant of a mining run. Defaults reproduce
// the fixed batch behavior, a config file or MINER_* environment variables
// can override them.
package settings

import (
	"encoding/hex"
	"math/big"
	"strings"
	"time"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/spf13/viper"

	"github.com/humblenginr/blockminer/errors"
	"github.com/humblenginr/blockminer/utils"
)

const (
	PowCheckTwoZeroBytes = "two-zero-bytes"
	PowCheckTarget       = "target"

	EnvPrefix = "MINER"
)

// defaults of the fixed demonstration identity
const (
	DefaultPrevBlockHash      = "0000000000000000000000000000000001010100000000000000000000000000"
	DefaultTargetHex          = "0000ffff00000000000000000000000000000000000000000000000000000000"
	DefaultCoinbaseText       = "853900 Btc_Chris"
	DefaultCoinbasePrivateKey = "64c95a643e020001f5103d227d44da4ed0d4ed8debf317c231fa1e5b42bec352"
	DefaultBlockSubsidy       = uint64(312_500_000)
	// no soft fork signalling
	DefaultBlockVersion = int32(0x20000000)
)

type Settings struct {
	MempoolDir     string
	IndexFileName  string
	OutputFile     string
	MaxBlockVBytes uint64

	BlockVersion       int32
	PrevBlockHash      string
	TargetHex          string
	CoinbaseText       string
	CoinbasePrivateKey string
	BlockSubsidy       uint64

	MaxIterations uint64
	MineTimeout   time.Duration
	MinerWorkers  int
	PowCheck      string

	LogLevel   string
	PrettyLogs bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mempool_dir", "./mempool")
	v.SetDefault("index_file_name", "mempool.json")
	v.SetDefault("output_file", "out.txt")
	v.SetDefault("max_block_vbytes", uint64(1_000_000))
	v.SetDefault("block_version", DefaultBlockVersion)
	v.SetDefault("prev_block_hash", DefaultPrevBlockHash)
	v.SetDefault("target_hex", DefaultTargetHex)
	v.SetDefault("coinbase_text", DefaultCoinbaseText)
	v.SetDefault("coinbase_private_key", DefaultCoinbasePrivateKey)
	v.SetDefault("block_subsidy", DefaultBlockSubsidy)
	v.SetDefault("max_iterations", uint64(0))
	v.SetDefault("mine_timeout", time.Duration(0))
	v.SetDefault("miner_workers", 1)
	v.SetDefault("pow_check", PowCheckTwoZeroBytes)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("pretty_logs", true)
}

// NewSettings reads defaults, then configFile when given, then the
// environment.
func NewSettings(configFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigurationError("failed to read config file %s", configFile, err)
		}
	}

	s := &Settings{
		MempoolDir:         v.GetString("mempool_dir"),
		IndexFileName:      v.GetString("index_file_name"),
		OutputFile:         v.GetString("output_file"),
		MaxBlockVBytes:     v.GetUint64("max_block_vbytes"),
		BlockVersion:       v.GetInt32("block_version"),
		PrevBlockHash:      v.GetString("prev_block_hash"),
		TargetHex:          v.GetString("target_hex"),
		CoinbaseText:       v.GetString("coinbase_text"),
		CoinbasePrivateKey: v.GetString("coinbase_private_key"),
		BlockSubsidy:       v.GetUint64("block_subsidy"),
		MaxIterations:      v.GetUint64("max_iterations"),
		MineTimeout:        v.GetDuration("mine_timeout"),
		MinerWorkers:       v.GetInt("miner_workers"),
		PowCheck:           v.GetString("pow_check"),
		LogLevel:           v.GetString("log_level"),
		PrettyLogs:         v.GetBool("pretty_logs"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the fields that need parsing before the run starts.
func (s *Settings) Validate() error {
	if _, err := s.PrevBlockHashBytes(); err != nil {
		return err
	}

	if _, err := s.Target(); err != nil {
		return err
	}

	if _, err := s.PrivateKeyBytes(); err != nil {
		return err
	}

	// a longer text would not fit behind the one byte push prefix
	if len(s.CoinbaseText) == 0 || len(s.CoinbaseText) > 75 {
		return errors.NewConfigurationError("coinbase text must be 1 to 75 bytes, got %d", len(s.CoinbaseText))
	}

	if s.MinerWorkers < 1 {
		return errors.NewConfigurationError("miner workers must be at least 1, got %d", s.MinerWorkers)
	}

	if s.PowCheck != PowCheckTwoZeroBytes && s.PowCheck != PowCheckTarget {
		return errors.NewConfigurationError("unknown pow check %q", s.PowCheck)
	}

	if s.MempoolDir == "" || s.OutputFile == "" {
		return errors.NewConfigurationError("mempool dir and output file must be set")
	}

	return nil
}

// PrevBlockHashBytes parses PrevBlockHash, which is hex of the raw header bytes.
func (s *Settings) PrevBlockHashBytes() (chainhash.Hash, error) {
	h, err := utils.RawHashFromHex(s.PrevBlockHash)
	if err != nil {
		return h, errors.NewConfigurationError("invalid previous block hash %q", s.PrevBlockHash, err)
	}

	return h, nil
}

// Target parses TargetHex as a big-endian number.
func (s *Settings) Target() (*big.Int, error) {
	target, ok := new(big.Int).SetString(s.TargetHex, 16)
	if !ok || target.Sign() <= 0 {
		return nil, errors.NewConfigurationError("invalid target %q", s.TargetHex)
	}

	return target, nil
}

func (s *Settings) PrivateKeyBytes() ([]byte, error) {
	b, err := hex.DecodeString(s.CoinbasePrivateKey)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid coinbase private key", err)
	}

	if len(b) != 32 {
		return nil, errors.NewConfigurationError("coinbase private key must be 32 bytes, got %d", len(b))
	}

	return b, nil
}
