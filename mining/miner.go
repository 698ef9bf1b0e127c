package mining

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/humblenginr/blockminer/errors"
	"github.com/humblenginr/blockminer/ulogger"
)

const (
	nonceOffset = 76
	// the context is polled once per this many attempts
	ctxCheckMask = 1<<12 - 1
)

type MineOptions struct {
	// MaxIterations bounds the number of hashes, zero means unbounded.
	MaxIterations uint64
	// Accept defaults to HasTwoZeroBytes.
	Accept AcceptFunc
	// Workers splits the nonce space in strides, defaults to one.
	Workers int
}

type MiningResult struct {
	Nonce    uint32
	Hash     chainhash.Hash
	Attempts uint64
}

// Mine searches nonces upwards from header.Nonce until opts.Accept holds. On
// success header.Nonce is the winning nonce.
func Mine(ctx context.Context, header *BlockHeader, opts MineOptions) (*MiningResult, error) {
	initPrometheusMetrics()

	if opts.Accept == nil {
		opts.Accept = HasTwoZeroBytes
	}

	start := time.Now()

	var (
		result *MiningResult
		err    error
	)

	if opts.Workers <= 1 {
		result, err = mineSerial(ctx, header, opts)
	} else {
		result, err = mineParallel(ctx, header, opts)
	}

	prometheusMiningDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			prometheusMiningSearchFailed.WithLabelValues(e.Code().String()).Inc()
		}

		return nil, err
	}

	prometheusMiningHashes.Add(float64(result.Attempts))
	prometheusMiningBlocksFound.Inc()

	header.Nonce = result.Nonce

	return result, nil
}

func mineSerial(ctx context.Context, header *BlockHeader, opts MineOptions) (*MiningResult, error) {
	buf := header.Bytes()
	nonce := header.Nonce

	for attempts := uint64(0); ; attempts++ {
		if attempts&ctxCheckMask == 0 && ctx.Err() != nil {
			prometheusMiningHashes.Add(float64(attempts))
			return nil, errors.NewContextCanceledError("mining stopped after %d attempts", attempts, ctx.Err())
		}

		if opts.MaxIterations > 0 && attempts >= opts.MaxIterations {
			prometheusMiningHashes.Add(float64(attempts))
			return nil, errors.NewThresholdExceededError("no valid nonce within %d attempts", opts.MaxIterations)
		}

		binary.LittleEndian.PutUint32(buf[nonceOffset:], nonce)
		hash := chainhash.DoubleHashH(buf)

		if opts.Accept(&hash) {
			return &MiningResult{Nonce: nonce, Hash: hash, Attempts: attempts + 1}, nil
		}

		if nonce == math.MaxUint32 {
			prometheusMiningHashes.Add(float64(attempts + 1))
			return nil, errors.NewProcessingError("nonce overflow after %d attempts", attempts+1)
		}

		nonce++
	}
}

// mineParallel gives worker i the nonces start+i, start+i+W, ... on a private
// copy of the header. The first worker to win stops the others.
func mineParallel(parent context.Context, header *BlockHeader, opts MineOptions) (*MiningResult, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	attempts := atomic.NewUint64(0)
	startNonce := uint64(header.Nonce)
	stride := uint64(opts.Workers)

	var (
		once   sync.Once
		result *MiningResult
	)

	for i := 0; i < opts.Workers; i++ {
		local := *header
		offset := uint64(i)

		g.Go(func() error {
			buf := local.Bytes()

			for n, nonce := uint64(0), startNonce+offset; nonce <= math.MaxUint32; n, nonce = n+1, nonce+stride {
				if n&ctxCheckMask == 0 && gCtx.Err() != nil {
					return nil
				}

				if opts.MaxIterations > 0 && attempts.Inc() > opts.MaxIterations {
					return nil
				} else if opts.MaxIterations == 0 {
					attempts.Inc()
				}

				binary.LittleEndian.PutUint32(buf[nonceOffset:], uint32(nonce))
				hash := chainhash.DoubleHashH(buf)

				if opts.Accept(&hash) {
					once.Do(func() {
						result = &MiningResult{Nonce: uint32(nonce), Hash: hash}
						cancel()
					})

					return nil
				}
			}

			return nil
		})
	}

	_ = g.Wait()

	total := attempts.Load()
	if opts.MaxIterations > 0 && total > opts.MaxIterations {
		total = opts.MaxIterations
	}

	if result != nil {
		result.Attempts = total
		return result, nil
	}

	prometheusMiningHashes.Add(float64(total))

	if parent.Err() != nil {
		return nil, errors.NewContextCanceledError("mining stopped after %d attempts", total, parent.Err())
	}

	if opts.MaxIterations > 0 && total >= opts.MaxIterations {
		return nil, errors.NewThresholdExceededError("no valid nonce within %d attempts", opts.MaxIterations)
	}

	return nil, errors.NewProcessingError("nonce overflow after %d attempts", total)
}

// MineBlock searches a nonce for block and logs the outcome.
func MineBlock(ctx context.Context, logger ulogger.Logger, block *Block, opts MineOptions) (*MiningResult, error) {
	logger.Infof("mining block with %d transactions, merkle root %s, bits %08x", len(block.Transactions), block.BlockHeader.MerkleRoot, block.BlockHeader.Bits)

	result, err := Mine(ctx, &block.BlockHeader, opts)
	if err != nil {
		logger.Errorf("mining failed: %v", err)
		return nil, err
	}

	logger.Infof("found nonce %d after %d attempts, block hash %s", result.Nonce, result.Attempts, result.Hash)

	return result, nil
}
