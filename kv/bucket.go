// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides logical bucket for kv store.
type Bucket string

// Key returns the full key of the given key in this bucket.
func (b Bucket) Key(key ...[]byte) []byte {
	n := len(b)
	for _, k := range key {
		n += len(k)
	}
	buf := make([]byte, 0, n)
	buf = append(buf, b...)
	for _, k := range key {
		buf = append(buf, k...)
	}
	return buf
}

// Get reads the value of key in this bucket.
func (b Bucket) Get(src Getter, key ...[]byte) ([]byte, error) {
	return src.Get(b.Key(key...))
}

// Put writes the value of key in this bucket.
func (b Bucket) Put(dst Putter, val []byte, key ...[]byte) error {
	return dst.Put(b.Key(key...), val)
}

// Delete removes key from this bucket.
func (b Bucket) Delete(dst Putter, key ...[]byte) error {
	return dst.Delete(b.Key(key...))
}

// Range returns the range of keys in this bucket starting with the given sub prefix.
func (b Bucket) Range(sub ...[]byte) Range {
	return PrefixRange(b.Key(sub...))
}
