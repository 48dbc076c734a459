// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Logger writes key/value structured records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

// WithContext returns a logger carrying ctx on every record.
// The root handler is resolved per record, so loggers created at package init
// follow handlers installed later by Init.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

// Root returns the root logger.
func Root() Logger {
	return &logger{}
}

type logger struct {
	ctx []any
}

func (l *logger) target() ethlog.Logger {
	if len(l.ctx) == 0 {
		return ethlog.Root()
	}
	return ethlog.Root().With(l.ctx...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.target().Trace(msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.target().Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.target().Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.target().Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.target().Error(msg, ctx...) }

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &logger{ctx: append(merged, ctx...)}
}

// Init installs the root handler. verbosity follows the legacy geth levels
// (0 crit .. 5 trace).
func Init(w io.Writer, verbosity int, useJSON bool) {
	lvl := ethlog.FromLegacyLevel(verbosity)
	ethlog.SetDefault(ethlog.NewLogger(NewHandler(w, lvl, useJSON)))
}

// NewHandler creates a terminal or JSON handler writing to w.
func NewHandler(w io.Writer, lvl slog.Level, useJSON bool) slog.Handler {
	if useJSON {
		return ethlog.JSONHandlerWithLevel(w, lvl)
	}
	return ethlog.NewTerminalHandlerWithLevel(w, lvl, useColor(w))
}

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
