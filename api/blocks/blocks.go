// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/trs/api/utils"
	"github.com/vechain/trs/chain"
)

// Block for marshal block
type Block struct {
	Number    uint64 `json:"number"`
	Timestamp uint64 `json:"timestamp"`
}

type Blocks struct {
	repo *chain.Repository
}

func New(repo *chain.Repository) *Blocks {
	return &Blocks{
		repo,
	}
}

// parseRevision accepts a block number or "best".
func parseRevision(revision string) (uint64, bool, error) {
	if revision == "" || revision == "best" {
		return 0, true, nil
	}
	n, err := strconv.ParseUint(revision, 0, 64)
	if err != nil {
		return 0, false, err
	}
	return n, false, nil
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	num, best, err := parseRevision(mux.Vars(req)["revision"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "revision"))
	}
	blk := b.repo.BestBlock()
	if !best {
		if blk, err = b.repo.GetBlock(num); err != nil {
			if b.repo.IsNotFound(err) {
				return utils.WriteJSON(w, nil)
			}
			return err
		}
	}
	return utils.WriteJSON(w, &Block{
		Number:    blk.Number,
		Timestamp: blk.Timestamp,
	})
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{revision}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
