package bmd

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/merkle-distributor/ss58"
)

func TestLeafData(t *testing.T) {
	account := mustAccount(t, aliceHex)
	data, err := LeafData(0x01020304, account, uint256.NewInt(0x0a0b))
	require.NoError(t, err)
	require.Len(t, data, LeafDataSize)
	require.Equal(t, "01020304", hex.EncodeToString(data[:4]))
	require.Equal(t, account[:], data[4:36])
	require.Equal(t, "00000000000000000000000000000a0b", hex.EncodeToString(data[36:]))
}

func TestEncodeLeaf(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
		want   string
	}{
		{"alice", threeRecords(t)[0], "0x7fd1b0463fed6a0513d92a16d512f6111a00e6a2dda492e43e655754d5e73553"},
		{"bob", threeRecords(t)[1], "0x25edf9a5bfb6c1640282fbf6c2d78a2b5b34093fdb0604e6e1105e3332b7522d"},
		{"charlie", threeRecords(t)[2], "0xb5ad93ee094572beb1f780fad1052830fda072995793408e0502c8ed3d623185"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			leaf, err := tc.record.Leaf()
			require.NoError(t, err)
			require.Equal(t, tc.want, leaf.Hex())
		})
	}
}

func TestEncodeLeafAmountWidth(t *testing.T) {
	account := mustAccount(t, bobHex)

	maxAmount, overflow := uint256.FromBig(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))
	require.False(t, overflow)
	_, err := EncodeLeaf(1, account, maxAmount)
	require.NoError(t, err)

	tooWide := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	_, err = EncodeLeaf(1, account, tooWide)
	require.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	_, err = EncodeLeaf(1, account, nil)
	require.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
}

func TestEncodeAddressLeaf(t *testing.T) {
	leaf, err := EncodeAddressLeaf(0, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", ss58.Substrate, uint256.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, "0x7fd1b0463fed6a0513d92a16d512f6111a00e6a2dda492e43e655754d5e73553", leaf.Hex())

	_, err = EncodeAddressLeaf(0, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", ss58.Bifrost, uint256.NewInt(100))
	require.True(t, errors.Is(err, ErrInvalidAddress), "got %v", err)

	_, err = EncodeAddressLeaf(0, "not-an-address", ss58.Substrate, uint256.NewInt(100))
	require.True(t, errors.Is(err, ErrInvalidAddress), "got %v", err)
}
