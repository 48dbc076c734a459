// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"
	"fmt"
)

// Block is the header slice of a block the TRS contracts read: its height and timestamp.
type Block struct {
	Number    uint64
	Timestamp uint64 // unix seconds
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(#%d @%d)", b.Number, b.Timestamp)
}

func numberKey(num uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], num)
	return k[:]
}
