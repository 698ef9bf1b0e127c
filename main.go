// Command blockminer reads a mempool directory, selects the transactions with
// the highest fee rate, assembles a block around a fresh coinbase and searches
// a nonce for it. The mined block is written as text to the output file.
package main

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/humblenginr/blockminer/mempool"
	"github.com/humblenginr/blockminer/mining"
	"github.com/humblenginr/blockminer/settings"
	"github.com/humblenginr/blockminer/txnpicker"
	"github.com/humblenginr/blockminer/ulogger"
)

func main() {
	app := &cli.App{
		Name:  "blockminer",
		Usage: "Assemble and mine a block from a mempool directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path of an optional config file"},
			&cli.StringFlag{Name: "mempool-dir", Usage: "directory of transaction records"},
			&cli.StringFlag{Name: "output", Usage: "file the mined block is written to"},
			&cli.Uint64Flag{Name: "max-iterations", Usage: "stop after this many hashes, 0 for no limit"},
			&cli.DurationFlag{Name: "timeout", Usage: "stop the nonce search after this long, 0 for no limit"},
			&cli.IntFlag{Name: "workers", Usage: "number of nonce search workers"},
			&cli.StringFlag{Name: "pow-check", Usage: "two-zero-bytes or target"},
			&cli.StringFlag{Name: "log-level", Usage: "DEBUG, INFO, WARN or ERROR"},
		},
		Action: func(c *cli.Context) error {
			s, err := settings.NewSettings(c.String("config"))
			if err != nil {
				return err
			}

			applyFlags(c, s)

			if err = s.Validate(); err != nil {
				return err
			}

			logger := ulogger.New("miner", ulogger.WithLevel(s.LogLevel), ulogger.WithPretty(s.PrettyLogs))

			return run(c.Context, logger, s)
		},
	}

	if err := app.Run(os.Args); err != nil {
		ulogger.New("miner").Errorf("%v", err)
		os.Exit(1)
	}
}

func applyFlags(c *cli.Context, s *settings.Settings) {
	if c.IsSet("mempool-dir") {
		s.MempoolDir = c.String("mempool-dir")
	}

	if c.IsSet("output") {
		s.OutputFile = c.String("output")
	}

	if c.IsSet("max-iterations") {
		s.MaxIterations = c.Uint64("max-iterations")
	}

	if c.IsSet("timeout") {
		s.MineTimeout = c.Duration("timeout")
	}

	if c.IsSet("workers") {
		s.MinerWorkers = c.Int("workers")
	}

	if c.IsSet("pow-check") {
		s.PowCheck = c.String("pow-check")
	}

	if c.IsSet("log-level") {
		s.LogLevel = c.String("log-level")
	}
}

// run goes through the whole batch: load, pick, assemble, mine, write.
func run(ctx context.Context, logger ulogger.Logger, s *settings.Settings) error {
	cfg, err := mining.NewConfig(s)
	if err != nil {
		return err
	}

	accept, err := mining.NewAcceptFunc(s.PowCheck, cfg.Bits)
	if err != nil {
		return err
	}

	loader := mempool.NewLoader(logger.New("mempool"), s.MempoolDir, s.IndexFileName)
	picker := txnpicker.NewTransactionPicker(logger.New("picker"), loader, s.MaxBlockVBytes)

	txns, err := picker.Pick()
	if err != nil {
		return err
	}

	block, err := mining.GetCandidateBlock(cfg, txns, time.Now())
	if err != nil {
		return err
	}

	if s.MineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.MineTimeout)

		defer cancel()
	}

	_, err = mining.MineBlock(ctx, logger.New("mining"), block, mining.MineOptions{
		MaxIterations: s.MaxIterations,
		Accept:        accept,
		Workers:       s.MinerWorkers,
	})
	if err != nil {
		return err
	}

	if err = block.WriteToFile(s.OutputFile); err != nil {
		return err
	}

	logger.Infof("wrote block with %d transactions to %s", len(block.Transactions), s.OutputFile)

	return nil
}
