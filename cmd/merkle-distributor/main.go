package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bnb-chain/merkle-distributor/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "merkle-distributor",
		Usage: "Build Merkle balance trees, hand out proofs and track claims",
		Description: `Balances are read from JSON files of the form
{"balances": [[address, amount], ...]}. The position of an entry is its claim
index. A directory argument reads every file in it, in name order.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML config file; flags and environment override it",
				EnvVars: []string{"MERKLE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "network",
				Usage:   "Address format: polkadot, kusama, bifrost or substrate",
				Value:   config.DefaultNetwork,
				EnvVars: []string{config.EnvNetwork},
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "Goroutines hashing leaves, 0 hashes sequentially",
				EnvVars: []string{config.EnvWorkers},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Debug logging",
				EnvVars: []string{config.EnvVerbose},
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write prometheus metrics to this file on exit",
				EnvVars: []string{config.EnvMetricsFile},
			},
			&cli.StringFlag{
				Name:    "store",
				Usage:   "Ledger store: memory, leveldb or redis",
				Value:   string(config.DefaultStore),
				EnvVars: []string{config.EnvStore},
			},
			&cli.StringFlag{
				Name:    "leveldb-path",
				Usage:   "LevelDB directory of the ledger",
				Value:   config.DefaultLevelDBPath,
				EnvVars: []string{config.EnvLevelDBPath},
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address of the ledger",
				EnvVars: []string{config.EnvRedisAddr},
			},
			&cli.StringFlag{
				Name:    "namespace",
				Usage:   "Key prefix of the ledger in a shared store",
				Value:   config.DefaultNamespace,
				EnvVars: []string{config.EnvNamespace},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "root",
				Usage:     "Print the Merkle root of a balance file",
				ArgsUsage: "<balances>",
				Flags:     []cli.Flag{checkDuplicatesFlag()},
				Action:    rootCommand,
			},
			{
				Name:      "proof",
				Usage:     "Print the claim and proof of one address",
				ArgsUsage: "<balances>",
				Flags: []cli.Flag{
					checkDuplicatesFlag(),
					&cli.StringFlag{Name: "address", Usage: "Claimant address", Required: true},
				},
				Action: proofCommand,
			},
			{
				Name:  "verify",
				Usage: "Check a claim against a root",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Usage: "Merkle root, 0x hex"},
					&cli.StringFlag{Name: "distribution", Usage: "Claim document written by export; replaces --root, --index, --amount and --proof"},
					&cli.StringFlag{Name: "address", Usage: "Claimant address", Required: true},
					&cli.UintFlag{Name: "index", Usage: "Claim index"},
					&cli.StringFlag{Name: "amount", Usage: "Claimed amount, decimal"},
					&cli.StringSliceFlag{Name: "proof", Usage: "Proof elements, 0x hex, in order"},
				},
				Action: verifyCommand,
			},
			{
				Name:      "export",
				Usage:     "Write the claim document of every address",
				ArgsUsage: "<balances>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "Output file, stdout when empty"},
				},
				Action: exportCommand,
			},
			{
				Name:      "address",
				Usage:     "Decode an address and print its public key",
				ArgsUsage: "<address>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: "Also print the address in this network's format"},
				},
				Action: addressCommand,
			},
			ledgerCommand(),
		},
	}
}

func checkDuplicatesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "check-duplicates",
		Usage: "Fail when an account appears more than once",
	}
}
