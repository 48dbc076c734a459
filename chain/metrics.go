// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/vechain/trs/metrics"

var (
	metricCacheHitMiss    = metrics.LazyLoadCounterVec("repo_cache_hit_miss_count", []string{"event"})
	metricBestBlockNumber = metrics.LazyLoadGauge("repo_best_block_number")
)
