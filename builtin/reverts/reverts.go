// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Code is the outcome of a TRS operation.
type Code byte

const (
	Success Code = iota
	Malformed
	OutOfEnergy
	InvalidEnergyLimit
	InsufficientBalance
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case Malformed:
		return "malformed"
	case OutOfEnergy:
		return "out-of-energy"
	case InvalidEnergyLimit:
		return "invalid-energy-limit"
	case InsufficientBalance:
		return "insufficient-balance"
	default:
		return fmt.Sprintf("code(%d)", byte(c))
	}
}

// ErrRequire is a failed contract precondition. It aborts the operation and
// surfaces as its result code rather than as a node fault.
type ErrRequire struct {
	code    Code
	message string
}

// NewRequireError returns a Malformed failure.
func NewRequireError(message string) *ErrRequire {
	return New(Malformed, message)
}

func New(code Code, message string) *ErrRequire {
	return &ErrRequire{
		code:    code,
		message: message,
	}
}

func Errorf(code Code, format string, args ...any) *ErrRequire {
	return New(code, fmt.Sprintf(format, args...))
}

func (e *ErrRequire) Error() string {
	return e.message
}

func (e *ErrRequire) Code() Code {
	return e.code
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRequire
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}

// CodeOf returns the result code carried by err.
// Nil maps to Success; the bool is false when err is not a revert.
func CodeOf(err error) (Code, bool) {
	if err == nil {
		return Success, true
	}
	var ve *ErrRequire
	if errors.As(err, &ve) && ve != nil {
		return ve.code, true
	}
	return Malformed, false
}
