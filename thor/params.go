// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Constants of the TRS contracts.
const (
	TRSOperationEnergy uint64 = 21000     // flat fee charged by every TRS operation
	MaxTxEnergy        uint64 = 2_000_000 // energy ceiling of a single transaction

	PeriodDuration     uint64 = 30 * 24 * 60 * 60 // seconds
	TestPeriodDuration uint64 = 1

	MaxPeriods      = 1200
	MaxPrecision    = 18
	MaxBulkDeposits = 100
)

var (
	// FoundationAddress is the only account allowed to create test-mode TRS contracts.
	FoundationAddress = MustParseAddress("0xa0eeaeabdbc92953b072afbd21f3e3fd8a4a4f5e6a6e22200db746ab75e9a99a")

	// builtin addresses of the three TRS entry surfaces.
	TRSStateAddress = BytesToAddress([]byte("TRSStateContract"))
	TRSUseAddress   = BytesToAddress([]byte("TRSUseContract"))
	TRSQueryAddress = BytesToAddress([]byte("TRSQueryContract"))
)
