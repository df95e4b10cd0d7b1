package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/genesis"
	"github.com/bnb-chain/merkle-distributor/ss58"
)

// withSession runs fn and always flushes the session, keeping fn's error
// over a flush error.
func withSession(c *cli.Context, fn func(s *session) error) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	err = fn(s)
	if closeErr := s.close(); err == nil {
		err = closeErr
	}
	return err
}

// uint32Flag reads a uint flag that must fit in 32 bits.
func uint32Flag(c *cli.Context, name string) (uint32, error) {
	v := uint64(c.Uint(name))
	if v > math.MaxUint32 {
		return 0, errors.Wrapf(bmd.ErrInvalidInput, "--%s %d", name, v)
	}
	return uint32(v), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rootCommand(c *cli.Context) error {
	return withSession(c, func(s *session) error {
		tree, _, err := s.buildTree(c.Args().First(), c.Bool("check-duplicates"))
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, tree.Root().Hex())
		return nil
	})
}

func proofCommand(c *cli.Context) error {
	return withSession(c, func(s *session) error {
		address := c.String("address")
		account, err := ss58.Decode(address, s.format)
		if err != nil {
			return err
		}
		tree, records, err := s.buildTree(c.Args().First(), c.Bool("check-duplicates"))
		if err != nil {
			return err
		}

		// first entry wins when an account repeats
		for position, r := range records {
			if r.Account != account {
				continue
			}
			proof, err := tree.GetProof(position)
			if err != nil {
				return err
			}
			s.logger.Debug("proof generated", zap.String("address", address), zap.Int("position", position), zap.Int("length", len(proof)))
			return printJSON(c.App.Writer, genesis.Claim{
				Index:  r.Index,
				Amount: r.Amount.Dec(),
				Proof:  proof.Hex(),
			})
		}
		return errors.Errorf("%s has no balance", address)
	})
}

func verifyCommand(c *cli.Context) error {
	return withSession(c, func(s *session) error {
		address := c.String("address")
		var (
			ok  bool
			err error
		)
		if path := c.String("distribution"); path != "" {
			ok, err = verifyDistribution(path, address, s.format)
		} else {
			ok, err = verifyFlags(c, address, s.format)
		}
		if err != nil {
			return err
		}
		s.metrics.ProofVerified(ok)
		if !ok {
			return errors.Errorf("%s: proof does not match the root", address)
		}
		fmt.Fprintf(c.App.Writer, "%s: valid\n", address)
		return nil
	})
}

func verifyDistribution(path, address string, format ss58.Format) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	d, err := genesis.ReadDistribution(f)
	if err != nil {
		return false, err
	}
	return d.Verify(address, format)
}

func verifyFlags(c *cli.Context, address string, format ss58.Format) (bool, error) {
	root, err := bmd.ParseHash(c.String("root"))
	if err != nil {
		return false, errors.Wrap(err, "--root")
	}
	amount, err := uint256.FromDecimal(c.String("amount"))
	if err != nil {
		return false, errors.Wrapf(bmd.ErrInvalidInput, "--amount %q", c.String("amount"))
	}
	proof, err := bmd.ParseProof(c.StringSlice("proof"))
	if err != nil {
		return false, errors.Wrap(err, "--proof")
	}
	index, err := uint32Flag(c, "index")
	if err != nil {
		return false, err
	}
	return bmd.VerifyAddress(index, address, format, amount, proof, root)
}

func exportCommand(c *cli.Context) error {
	return withSession(c, func(s *session) error {
		tree, records, err := s.buildTree(c.Args().First(), true)
		if err != nil {
			return err
		}
		d, err := genesis.NewDistribution(tree, records, s.format)
		if err != nil {
			return err
		}

		out := c.String("out")
		if out == "" {
			return d.Write(c.App.Writer)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := d.Write(f); err != nil {
			f.Close()
			return err
		}
		s.logger.Info("distribution written", zap.String("file", out), zap.Int("claims", len(d.Claims)))
		return f.Close()
	})
}

func addressCommand(c *cli.Context) error {
	return withSession(c, func(s *session) error {
		address := c.Args().First()
		account, prefix, err := ss58.DecodeAny(address)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "public key: %s\nprefix:     %d\n", account.Hex(), prefix)

		if to := c.String("to"); to != "" {
			format, err := ss58.FormatByName(to)
			if err != nil {
				return err
			}
			encoded, err := ss58.Encode(account, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s: %s\n", format.Name, encoded)
		}
		return nil
	})
}
