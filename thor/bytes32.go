// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 is a storage key or a 256 bit digest.
type Bytes32 [32]byte

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// decodeFixedHex decodes s, with or without the 0x prefix, into exactly len(dst) bytes.
func decodeFixedHex(s string, dst []byte) error {
	switch len(s) {
	case len(dst) * 2:
	case len(dst)*2 + 2:
		if strings.ToLower(s[:2]) != "0x" {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	default:
		return errors.New("invalid length")
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}

// ParseBytes32 parses a hex string of exactly 32 bytes.
func ParseBytes32(s string) (b Bytes32, err error) {
	if err = decodeFixedHex(s, b[:]); err != nil {
		return Bytes32{}, err
	}
	return
}

// BytesToBytes32 left pads b, or keeps its rightmost 32 bytes.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
