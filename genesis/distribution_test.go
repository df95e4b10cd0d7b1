package genesis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/ss58"
)

func buildThree(t *testing.T) (*bmd.MerkleTree, []bmd.Record) {
	cfg, err := Load(strings.NewReader(threeBalances))
	require.NoError(t, err)
	records, err := cfg.Records(ss58.Bifrost)
	require.NoError(t, err)
	tree, err := bmd.BuildFromRecords(records)
	require.NoError(t, err)
	return tree, records
}

func TestNewDistribution(t *testing.T) {
	tree, records := buildThree(t)

	d, err := NewDistribution(tree, records, ss58.Bifrost)
	require.NoError(t, err)
	assert.Equal(t, threeRoot, d.MerkleRoot)
	assert.Equal(t, "425", d.TokenTotal)
	require.Len(t, d.Claims, 3)

	charlie := d.Claims[charlieBifrost]
	assert.Equal(t, uint32(2), charlie.Index)
	assert.Equal(t, "75", charlie.Amount)
	// the unpaired leaf is promoted, so its proof is the level above
	assert.Equal(t, []string{"0x5ad0f5c858b43c4830d647357f1677841821a8729736e4282664661b651a9588"}, charlie.Proof)

	for _, address := range []string{aliceBifrost, bobBifrost, charlieBifrost} {
		ok, err := d.Verify(address, ss58.Bifrost)
		require.NoError(t, err)
		assert.True(t, ok, address)
	}

	ok, err := d.Verify("unknown", ss58.Bifrost)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDistributionRoundTrip(t *testing.T) {
	tree, records := buildThree(t)
	d, err := NewDistribution(tree, records, ss58.Bifrost)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))
	assert.Contains(t, buf.String(), `"merkleRoot": "`+threeRoot+`"`)

	read, err := ReadDistribution(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, read)

	// a tampered amount no longer verifies
	claim := read.Claims[bobBifrost]
	claim.Amount = "251"
	read.Claims[bobBifrost] = claim
	ok, err := read.Verify(bobBifrost, ss58.Bifrost)
	require.NoError(t, err)
	assert.False(t, ok)

	claim.Amount = "lots"
	read.Claims[bobBifrost] = claim
	_, err = read.Verify(bobBifrost, ss58.Bifrost)
	require.True(t, errors.Is(err, ErrInvalidBalance), "got %v", err)
}

func TestNewDistributionMismatch(t *testing.T) {
	tree, records := buildThree(t)

	_, err := NewDistribution(tree, records[:2], ss58.Bifrost)
	require.True(t, errors.Is(err, ErrTreeMismatch), "got %v", err)

	swapped := []bmd.Record{records[1], records[0], records[2]}
	_, err = NewDistribution(tree, swapped, ss58.Bifrost)
	require.True(t, errors.Is(err, ErrTreeMismatch), "got %v", err)

	other, err := bmd.Build([]common.Hash{{1}, {2}, {3}})
	require.NoError(t, err)
	_, err = NewDistribution(other, records, ss58.Bifrost)
	require.True(t, errors.Is(err, ErrTreeMismatch), "got %v", err)
}
