// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketKey(t *testing.T) {
	b := Bucket("s")
	assert.Equal(t, []byte("sab"), b.Key([]byte("a"), []byte("b")))
	assert.Equal(t, []byte("s"), b.Key())
}

func TestPrefixRange(t *testing.T) {
	tests := []struct {
		prefix []byte
		limit  []byte
	}{
		{[]byte{1, 2}, []byte{1, 3}},
		{[]byte{1, 0xff}, []byte{2}},
		{[]byte{0xff, 0xff}, nil},
	}
	for _, tt := range tests {
		r := PrefixRange(tt.prefix)
		assert.Equal(t, tt.prefix, r.Start)
		assert.Equal(t, tt.limit, r.Limit)
	}

	assert.Equal(t, []byte("t"), Bucket("s").Range().Limit)
}
