package genesis

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/ss58"
)

const (
	aliceBifrost   = "gXCcrjjFX3RPyhHYgwZDmw8oe4JFpd5anko3nTY8VrmnJpe"
	bobBifrost     = "ex3LnZb7o3XEyCn7kycUS2Aho3QoHDk5xcTzRKs4WwY1MvQ"
	charlieBifrost = "ezhQxhdSnw9sacSeYZwU6UTXvinnb6bWjsoXRcyLv84JY7b"

	threeRoot = "0x1b6491cd9b52297839eb817816a6e66a372a393d3abae212c4773cce42f00739"
)

var threeBalances = `{
  "balances": [
    ["` + aliceBifrost + `", 100],
    ["` + bobBifrost + `", "250"],
    ["` + charlieBifrost + `", 75]
  ]
}`

func TestLoadAndBuild(t *testing.T) {
	cfg, err := Load(strings.NewReader(threeBalances))
	require.NoError(t, err)
	require.Len(t, cfg.Balances, 3)
	assert.Equal(t, uint256.NewInt(425), cfg.Total())

	records, err := cfg.Records(ss58.Bifrost)
	require.NoError(t, err)
	for i, r := range records {
		assert.Equal(t, uint32(i), r.Index)
	}
	assert.Equal(t, "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48", records[1].Account.Hex())
	assert.Equal(t, uint256.NewInt(250), records[1].Amount)

	tree, err := bmd.BuildFromRecords(records)
	require.NoError(t, err)
	assert.Equal(t, threeRoot, tree.Root().Hex())

	dups, err := cfg.Duplicates(ss58.Bifrost)
	require.NoError(t, err)
	assert.Empty(t, dups)
}

func TestRecordsWrongFormat(t *testing.T) {
	cfg, err := Load(strings.NewReader(threeBalances))
	require.NoError(t, err)

	_, err = cfg.Records(ss58.Polkadot)
	require.True(t, errors.Is(err, ss58.ErrInvalidAddress), "got %v", err)
	assert.Contains(t, err.Error(), "balance 0")
}

func TestLoadRejectsBadEntries(t *testing.T) {
	testCases := []struct {
		name  string
		entry string
	}{
		{"not a pair", `["` + aliceBifrost + `"]`},
		{"object", `{"address": "` + aliceBifrost + `"}`},
		{"negative", `["` + aliceBifrost + `", -1]`},
		{"fraction", `["` + aliceBifrost + `", 1.5]`},
		{"exponent", `["` + aliceBifrost + `", 1e3]`},
		{"hex string", `["` + aliceBifrost + `", "0x10"]`},
		{"wider than 128 bits", `["` + aliceBifrost + `", 340282366920938463463374607431768211456]`},
		{"address not a string", `[1, 1]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(`{"balances": [` + tc.entry + `]}`))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidBalance), "got %v", err)
		})
	}

	_, err := Load(strings.NewReader(`{"balances": [`))
	require.Error(t, err)
}

func TestMaxAmount(t *testing.T) {
	cfg, err := Load(strings.NewReader(`{"balances": [["` + aliceBifrost + `", "340282366920938463463374607431768211455"]]}`))
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Balances[0].Amount.BitLen())
}

func TestDuplicates(t *testing.T) {
	cfg, err := Load(strings.NewReader(`{"balances": [
		["` + aliceBifrost + `", 1],
		["` + bobBifrost + `", 2],
		["` + aliceBifrost + `", 3],
		["` + aliceBifrost + `", 4]
	]}`))
	require.NoError(t, err)

	dups, err := cfg.Duplicates(ss58.Bifrost)
	require.NoError(t, err)
	assert.Equal(t, []string{aliceBifrost}, dups)

	// the tree itself accepts repeated accounts
	records, err := cfg.Records(ss58.Bifrost)
	require.NoError(t, err)
	tree, err := bmd.BuildFromRecords(records)
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Size())

	_, err = NewDistribution(tree, records, ss58.Bifrost)
	require.True(t, errors.Is(err, ErrDuplicateAddress), "got %v", err)
}

func TestBalanceRoundTrip(t *testing.T) {
	cfg, err := Load(strings.NewReader(threeBalances))
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	again, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)

	data, err = cfg.Balances[1].MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["`+bobBifrost+`", "250"]`, string(data))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("b.json", `{"balances": [["`+bobBifrost+`", 250], ["`+charlieBifrost+`", 75]]}`)
	write("a.json", `{"balances": [["`+aliceBifrost+`", 100]]}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	cfg, err := LoadDir(dir)
	require.NoError(t, err)
	records, err := cfg.Records(ss58.Bifrost)
	require.NoError(t, err)
	tree, err := bmd.BuildFromRecords(records)
	require.NoError(t, err)
	assert.Equal(t, threeRoot, tree.Root().Hex())

	write("c.json", `{"balances": [[`)
	_, err = LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.json")
}
