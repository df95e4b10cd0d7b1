// Copyright 2022 bnb-chain. All Rights Reserved.
//
// Distributed under MIT license.
// See file LICENSE for detail or copy at https://opensource.org/licenses/MIT

// Package ss58 decodes and encodes substrate chain addresses.
//
// An SS58 address is base58(prefix || public key || checksum), where the
// checksum is the first two bytes of blake2b-512("SS58PRE" || prefix || key).
package ss58

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// AccountIDLength is the byte length of an account public key.
	AccountIDLength = 32
	checksumLength  = 2

	// prefixes below simplePrefixLimit are encoded in a single byte
	simplePrefixLimit = 64
	maxPrefix         = 16383
)

var checksumPreimage = []byte("SS58PRE")

// AccountID is the raw public key an address encodes.
type AccountID [AccountIDLength]byte

func (a AccountID) Bytes() []byte { return a[:] }

func (a AccountID) Hex() string { return hexutil.Encode(a[:]) }

func (a AccountID) String() string { return a.Hex() }

// ParseAccountID decodes a 0x-prefixed hex public key.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return id, errors.Wrapf(ErrInvalidAddress, "hex account %q: %v", s, err)
	}
	if len(raw) != AccountIDLength {
		return id, errors.Wrapf(ErrInvalidAddress, "hex account has %d bytes, want %d", len(raw), AccountIDLength)
	}
	copy(id[:], raw)
	return id, nil
}

// Format describes the address scheme of one chain.
type Format struct {
	Name   string
	Prefix uint16
}

var (
	Polkadot  = Format{Name: "polkadot", Prefix: 0}
	Kusama    = Format{Name: "kusama", Prefix: 2}
	Bifrost   = Format{Name: "bifrost", Prefix: 6}
	Substrate = Format{Name: "substrate", Prefix: 42}
)

var knownFormats = []Format{Polkadot, Kusama, Bifrost, Substrate}

// FormatByName looks up one of the known chain formats.
func FormatByName(name string) (Format, error) {
	for _, f := range knownFormats {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Format{}, errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// Decode returns the public key encoded in address. The address must carry
// the prefix of format and a valid checksum.
func Decode(address string, format Format) (AccountID, error) {
	id, prefix, err := DecodeAny(address)
	if err != nil {
		return id, err
	}
	if prefix != format.Prefix {
		return AccountID{}, errors.Wrapf(ErrInvalidAddress,
			"address %s has prefix %d, want %d (%s)", address, prefix, format.Prefix, format.Name)
	}
	return id, nil
}

// DecodeAny decodes an address of any prefix and returns the key and prefix.
func DecodeAny(address string) (AccountID, uint16, error) {
	var id AccountID
	if address == "" {
		return id, 0, errors.Wrap(ErrInvalidAddress, "empty address")
	}
	data, err := base58.Decode(address)
	if err != nil {
		return id, 0, errors.Wrapf(ErrInvalidAddress, "address %s: %v", address, err)
	}
	if len(data) == 0 {
		return id, 0, errors.Wrapf(ErrInvalidAddress, "address %s is empty", address)
	}

	prefix, prefixLen, err := decodePrefix(data)
	if err != nil {
		return id, 0, errors.Wrapf(err, "address %s", address)
	}
	if len(data) != prefixLen+AccountIDLength+checksumLength {
		return id, 0, errors.Wrapf(ErrInvalidAddress,
			"address %s decodes to %d bytes, want %d", address, len(data), prefixLen+AccountIDLength+checksumLength)
	}

	body := data[:prefixLen+AccountIDLength]
	if !bytes.Equal(checksum(body), data[len(body):]) {
		return id, 0, errors.Wrapf(ErrInvalidAddress, "address %s: bad checksum", address)
	}
	copy(id[:], body[prefixLen:])
	return id, prefix, nil
}

// Encode renders account as an address in the given format.
func Encode(account AccountID, format Format) (string, error) {
	prefix, err := encodePrefix(format.Prefix)
	if err != nil {
		return "", err
	}
	body := append(prefix, account[:]...)
	return base58.Encode(append(body, checksum(body)...)), nil
}

func decodePrefix(data []byte) (uint16, int, error) {
	first := data[0]
	switch {
	case first < simplePrefixLimit:
		return uint16(first), 1, nil
	case first < 128:
		if len(data) < 2 {
			return 0, 0, errors.Wrap(ErrInvalidAddress, "truncated prefix")
		}
		second := data[1]
		lower := (first&0x3f)<<2 | second>>6
		upper := second & 0x3f
		return uint16(lower) | uint16(upper)<<8, 2, nil
	default:
		return 0, 0, errors.Wrapf(ErrInvalidAddress, "reserved prefix byte %d", first)
	}
}

func encodePrefix(prefix uint16) ([]byte, error) {
	switch {
	case prefix < simplePrefixLimit:
		return []byte{byte(prefix)}, nil
	case prefix <= maxPrefix:
		first := byte((prefix&0xfc)>>2) | 0x40
		second := byte(prefix>>8) | byte(prefix&0x03)<<6
		return []byte{first, second}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "prefix %d out of range", prefix)
	}
}

func checksum(body []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(checksumPreimage)
	h.Write(body)
	return h.Sum(nil)[:checksumLength]
}
