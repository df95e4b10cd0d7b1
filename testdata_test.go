package bmd

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/merkle-distributor/ss58"
)

const (
	aliceHex   = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	bobHex     = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"
	charlieHex = "0x90b5ab205c6974c9ea841be688864633dc9ca8a357843eeacf2314649965fe22"
)

func mustAccount(t testing.TB, s string) ss58.AccountID {
	t.Helper()
	id, err := ss58.ParseAccountID(s)
	require.NoError(t, err)
	return id
}

// threeRecords is [(0, alice, 100), (1, bob, 250), (2, charlie, 75)].
func threeRecords(t testing.TB) []Record {
	return []Record{
		{Index: 0, Account: mustAccount(t, aliceHex), Amount: uint256.NewInt(100)},
		{Index: 1, Account: mustAccount(t, bobHex), Amount: uint256.NewInt(250)},
		{Index: 2, Account: mustAccount(t, charlieHex), Amount: uint256.NewInt(75)},
	}
}

func generateRecords(t testing.TB, n int) []Record {
	accounts := []ss58.AccountID{mustAccount(t, aliceHex), mustAccount(t, bobHex), mustAccount(t, charlieHex)}
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			Index:   uint32(i),
			Account: accounts[i%len(accounts)],
			Amount:  uint256.NewInt(uint64(1000 + i)),
		}
	}
	return records
}

func hexHash(s string) common.Hash {
	return common.HexToHash(s)
}
