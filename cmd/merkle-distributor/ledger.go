package main

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/ledger"
	"github.com/bnb-chain/merkle-distributor/ss58"
)

func ledgerCommand() *cli.Command {
	idFlag := func() cli.Flag {
		return &cli.UintFlag{Name: "id", Usage: "Distributor id", Required: true}
	}
	return &cli.Command{
		Name:  "ledger",
		Usage: "Register distributors and record claims",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register a root and print the distributor id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Usage: "Merkle root, 0x hex", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Free text, at most 128 bytes"},
					&cli.StringFlag{Name: "currency", Usage: "Currency being distributed", Value: "BNC"},
					&cli.StringFlag{Name: "amount", Usage: "Total to distribute, decimal", Required: true},
				},
				Action: ledgerCreate,
			},
			{
				Name:   "charge",
				Usage:  "Mark a distributor as funded",
				Flags:  []cli.Flag{idFlag()},
				Action: ledgerCharge,
			},
			{
				Name:  "claim",
				Usage: "Record a claim after checking its proof",
				Flags: []cli.Flag{
					idFlag(),
					&cli.UintFlag{Name: "index", Usage: "Claim index"},
					&cli.StringFlag{Name: "address", Usage: "Claimant address", Required: true},
					&cli.StringFlag{Name: "amount", Usage: "Claimed amount, decimal", Required: true},
					&cli.StringSliceFlag{Name: "proof", Usage: "Proof elements, 0x hex, in order"},
				},
				Action: ledgerClaim,
			},
			{
				Name:  "withdraw",
				Usage: "Take funds out of a distributor",
				Flags: []cli.Flag{
					idFlag(),
					&cli.StringFlag{Name: "amount", Usage: "Amount, decimal", Required: true},
				},
				Action: ledgerWithdraw,
			},
			{
				Name:  "status",
				Usage: "Print a distributor, or whether one index has claimed",
				Flags: []cli.Flag{
					idFlag(),
					&cli.Int64Flag{Name: "index", Usage: "Claim index to look up", Value: -1},
				},
				Action: ledgerStatus,
			},
		},
	}
}

// withLedger opens the configured store for the duration of fn.
func withLedger(c *cli.Context, fn func(s *session, l *ledger.Ledger) error) error {
	return withSession(c, func(s *session) error {
		db, err := s.openStore()
		if err != nil {
			return errors.Wrapf(err, "open %s store", s.cfg.Store)
		}
		defer db.Close()

		l, err := ledger.New(db, ledger.WithLogger(s.logger), ledger.WithMetrics(s.metrics))
		if err != nil {
			return err
		}
		return fn(s, l)
	})
}

func parseAmount(c *cli.Context) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(c.String("amount"))
	if err != nil {
		return nil, errors.Wrapf(ledger.ErrInvalidAmount, "--amount %q", c.String("amount"))
	}
	return amount, nil
}

func ledgerCreate(c *cli.Context) error {
	return withLedger(c, func(s *session, l *ledger.Ledger) error {
		root, err := bmd.ParseHash(c.String("root"))
		if err != nil {
			return err
		}
		amount, err := parseAmount(c)
		if err != nil {
			return err
		}
		id, err := l.Create(root, c.String("description"), c.String("currency"), amount)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, id)
		return nil
	})
}

func ledgerCharge(c *cli.Context) error {
	return withLedger(c, func(s *session, l *ledger.Ledger) error {
		id, err := uint32Flag(c, "id")
		if err != nil {
			return err
		}
		return l.Charge(id)
	})
}

func ledgerClaim(c *cli.Context) error {
	return withLedger(c, func(s *session, l *ledger.Ledger) error {
		id, err := uint32Flag(c, "id")
		if err != nil {
			return err
		}
		index, err := uint32Flag(c, "index")
		if err != nil {
			return err
		}
		account, err := ss58.Decode(c.String("address"), s.format)
		if err != nil {
			return err
		}
		amount, err := parseAmount(c)
		if err != nil {
			return err
		}
		proof, err := bmd.ParseProof(c.StringSlice("proof"))
		if err != nil {
			return err
		}
		return l.Claim(id, index, account, amount, proof)
	})
}

func ledgerWithdraw(c *cli.Context) error {
	return withLedger(c, func(s *session, l *ledger.Ledger) error {
		id, err := uint32Flag(c, "id")
		if err != nil {
			return err
		}
		amount, err := parseAmount(c)
		if err != nil {
			return err
		}
		return l.EmergencyWithdraw(id, amount)
	})
}

func ledgerStatus(c *cli.Context) error {
	return withLedger(c, func(s *session, l *ledger.Ledger) error {
		id, err := uint32Flag(c, "id")
		if err != nil {
			return err
		}
		if index := c.Int64("index"); index >= 0 {
			if index > math.MaxUint32 {
				return errors.Wrapf(bmd.ErrInvalidInput, "--index %d", index)
			}
			claimed, err := l.IsClaimed(id, uint32(index))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "claimed: %t\n", claimed)
			return nil
		}

		d, err := l.Get(id)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, map[string]interface{}{
			"id":          d.ID,
			"root":        d.Root.Hex(),
			"description": d.Description,
			"currency":    d.Currency,
			"amount":      d.Amount.Dec(),
			"claimed":     d.Claimed.Dec(),
			"withdrawn":   d.Withdrawn.Dec(),
			"balance":     d.Balance().Dec(),
			"charged":     d.Charged,
		})
	})
}
