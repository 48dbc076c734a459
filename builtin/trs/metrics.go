// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import "github.com/vechain/trs/metrics"

var (
	metricCalls        = metrics.LazyLoadCounterVec("calls_count", []string{"surface", "op", "result"})
	metricCallDuration = metrics.LazyLoadHistogramVec("call_duration_us", []string{"surface"}, metrics.BucketExecution)
)
