// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/trs/cache"
	"github.com/vechain/trs/kv"
)

const (
	hdrBucket  = kv.Bucket("h") // block number => block
	propBucket = kv.Bucket("p") // property-named entries such as best block

	blockCacheSize = 512
)

var bestBlockKey = []byte("best-block")

// Reader is the read-only view of the chain that contracts depend on.
type Reader interface {
	BestBlock() *Block
	GetBlock(num uint64) (*Block, error)
	IsNotFound(err error) bool
}

// Repository stores the block index.
//
// It's thread-safe.
type Repository struct {
	store   kv.Store
	genesis *Block
	best    atomic.Pointer[Block]
	cache   *cache.LRU[uint64, *Block]
	lock    sync.Mutex
}

var _ Reader = (*Repository)(nil)

// NewRepository create an instance of repository.
func NewRepository(store kv.Store, genesis *Block) (*Repository, error) {
	if genesis.Number != 0 {
		return nil, errors.New("genesis number != 0")
	}
	c, err := cache.NewLRU[uint64, *Block](blockCacheSize)
	if err != nil {
		return nil, err
	}
	repo := &Repository{
		store:   store,
		genesis: genesis,
		cache:   c,
	}

	val, err := propBucket.Get(store, bestBlockKey)
	if err != nil {
		if !store.IsNotFound(err) {
			return nil, err
		}
		if err := repo.saveBlock(genesis); err != nil {
			return nil, err
		}
		return repo, nil
	}

	existing, err := repo.GetBlock(0)
	if err != nil {
		return nil, errors.Wrap(err, "get existing genesis")
	}
	if *existing != *genesis {
		return nil, errors.New("genesis mismatch")
	}

	var best Block
	if err := rlp.DecodeBytes(val, &best); err != nil {
		return nil, errors.Wrap(err, "decode best block")
	}
	repo.best.Store(&best)
	metricBestBlockNumber().Set(int64(best.Number))
	return repo, nil
}

// HasGenesis reports whether the store already holds a chain.
func HasGenesis(store kv.Store) (bool, error) {
	if _, err := propBucket.Get(store, bestBlockKey); err != nil {
		if store.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GenesisBlock returns genesis block.
func (r *Repository) GenesisBlock() *Block {
	return r.genesis
}

// BestBlock returns the newest block of the chain.
func (r *Repository) BestBlock() *Block {
	return r.best.Load()
}

// AddBlock appends a block after the best one.
// The timestamp must not go backwards.
func (r *Repository) AddBlock(timestamp uint64) (*Block, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	best := r.BestBlock()
	if timestamp < best.Timestamp {
		return nil, errors.Errorf("timestamp %d earlier than best block %v", timestamp, best)
	}
	blk := &Block{Number: best.Number + 1, Timestamp: timestamp}
	if err := r.saveBlock(blk); err != nil {
		return nil, err
	}
	return blk, nil
}

func (r *Repository) saveBlock(blk *Block) error {
	data, err := rlp.EncodeToBytes(blk)
	if err != nil {
		return err
	}
	bulk := r.store.Bulk()
	if err := hdrBucket.Put(bulk, data, numberKey(blk.Number)); err != nil {
		return err
	}
	if err := propBucket.Put(bulk, data, bestBlockKey); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return err
	}
	r.cache.Add(blk.Number, blk)
	r.best.Store(blk)
	metricBestBlockNumber().Set(int64(blk.Number))
	return nil
}

// GetBlock returns the block at the given height.
func (r *Repository) GetBlock(num uint64) (*Block, error) {
	if blk, ok := r.cache.Get(num); ok {
		metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "hit"})
		return blk, nil
	}
	metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "miss"})

	data, err := hdrBucket.Get(r.store, numberKey(num))
	if err != nil {
		return nil, err
	}
	var blk Block
	if err := rlp.DecodeBytes(data, &blk); err != nil {
		return nil, err
	}
	r.cache.Add(num, &blk)
	return &blk, nil
}

// IsNotFound returns if an error means not found.
func (r *Repository) IsNotFound(err error) bool {
	return r.store.IsNotFound(err)
}
