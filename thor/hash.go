// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

var blake2bPool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Blake2b returns the blake2b-256 digest of the concatenated data.
// Storage positions and contract addresses are derived with it.
func Blake2b(data ...[]byte) (sum Bytes32) {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	h := blake2bPool.Get().(hash.Hash)
	for _, b := range data {
		h.Write(b)
	}
	h.Sum(sum[:0])
	h.Reset()
	blake2bPool.Put(h)
	return
}
