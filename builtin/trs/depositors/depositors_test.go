// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package depositors

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/trs/builtin/slots"
	"github.com/vechain/trs/lvldb"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
)

func newTestList(t *testing.T) *List {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sctx := slots.NewContext(thor.Address{0xc0, 1}, state.New(db))
	return New(sctx, slots.Position("depositors"))
}

func account(i int) thor.Address {
	return thor.Address{thor.AccountPrefix, byte(i >> 8), byte(i)}
}

// walk returns the addresses reachable from the head.
func walk(t *testing.T, l *List) []thor.Address {
	var out []thor.Address
	require.NoError(t, l.Iterate(func(addr thor.Address) error {
		out = append(out, addr)
		return nil
	}))
	return out
}

// checkIntegrity asserts that the list holds exactly the expected set and
// that every node reaches the head backwards.
func checkIntegrity(t *testing.T, l *List, expected map[thor.Address]bool) {
	visited := walk(t, l)
	seen := make(map[thor.Address]bool)
	for _, addr := range visited {
		assert.False(t, seen[addr], "visited twice %v", addr)
		seen[addr] = true
	}
	assert.Equal(t, len(expected), len(seen))
	for addr := range expected {
		assert.True(t, seen[addr], "missing %v", addr)
	}

	n, err := l.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(expected)), n)

	head, err := l.Head()
	require.NoError(t, err)
	if len(expected) == 0 {
		assert.True(t, head.IsZero())
		return
	}
	prev, err := l.Prev(head)
	require.NoError(t, err)
	assert.True(t, prev.IsZero())

	for _, addr := range visited {
		ptr := addr
		for steps := 0; ptr != head; steps++ {
			require.Less(t, steps, len(visited), "prev chain of %v does not reach head", addr)
			ptr, err = l.Prev(ptr)
			require.NoError(t, err)
		}
	}
}

func TestInsertRemoveShapes(t *testing.T) {
	l := newTestList(t)
	expected := make(map[thor.Address]bool)
	checkIntegrity(t, l, expected)

	// sole entry
	require.NoError(t, l.InsertHead(account(1)))
	expected[account(1)] = true
	checkIntegrity(t, l, expected)
	require.NoError(t, l.Remove(account(1)))
	delete(expected, account(1))
	checkIntegrity(t, l, expected)

	for i := 1; i <= 4; i++ {
		require.NoError(t, l.InsertHead(account(i)))
		expected[account(i)] = true
	}
	// newest first
	assert.Equal(t, []thor.Address{account(4), account(3), account(2), account(1)}, walk(t, l))

	// re-inserting a listed address changes nothing
	require.NoError(t, l.InsertHead(account(2)))
	assert.Equal(t, []thor.Address{account(4), account(3), account(2), account(1)}, walk(t, l))

	// head
	require.NoError(t, l.Remove(account(4)))
	delete(expected, account(4))
	checkIntegrity(t, l, expected)

	// tail
	require.NoError(t, l.Remove(account(1)))
	delete(expected, account(1))
	checkIntegrity(t, l, expected)
	assert.Equal(t, []thor.Address{account(3), account(2)}, walk(t, l))

	valid, err := l.AccountIsValid(account(1))
	require.NoError(t, err)
	assert.False(t, valid)
	valid, err = l.AccountIsValid(account(2))
	require.NoError(t, err)
	assert.True(t, valid)

	assert.Error(t, l.Remove(account(1)))
	assert.Error(t, l.Remove(account(99)))
	assert.Error(t, l.InsertHead(thor.Address{}))
}

func TestRemoveInterior(t *testing.T) {
	l := newTestList(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, l.InsertHead(account(i)))
	}
	before := walk(t, l)
	require.Len(t, before, 10)

	removed := before[4]
	require.NoError(t, l.Remove(removed))

	after := walk(t, l)
	assert.Len(t, after, 9)
	assert.NotContains(t, after, removed)
	assert.Equal(t, before[0], after[0])

	unique := make(map[thor.Address]bool)
	for _, addr := range after {
		unique[addr] = true
	}
	assert.Len(t, unique, 9)
}

func TestRemoveWhileIterating(t *testing.T) {
	l := newTestList(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, l.InsertHead(account(i)))
	}
	var visited int
	require.NoError(t, l.Iterate(func(addr thor.Address) error {
		visited++
		return l.Remove(addr)
	}))
	assert.Equal(t, 5, visited)
	checkIntegrity(t, l, map[thor.Address]bool{})
}

func TestRandomOperations(t *testing.T) {
	type op struct {
		Insert bool
		Index  uint8
	}

	l := newTestList(t)
	expected := make(map[thor.Address]bool)

	var ops []op
	fuzz.NewWithSeed(42).NilChance(0).NumElements(300, 300).Fuzz(&ops)

	for _, o := range ops {
		addr := account(int(o.Index % 24))
		if o.Insert {
			require.NoError(t, l.InsertHead(addr))
			expected[addr] = true
		} else if expected[addr] {
			require.NoError(t, l.Remove(addr))
			delete(expected, addr)
		} else {
			assert.Error(t, l.Remove(addr))
		}
		checkIntegrity(t, l, expected)
	}
}
