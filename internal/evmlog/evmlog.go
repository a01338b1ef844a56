// Copyright 2024 The EvmIL Authors
// This file is part of the EvmIL library.
//
// The EvmIL library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The EvmIL library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the EvmIL library. If not, see <http://www.gnu.org/licenses/>.

// Package evmlog provides the leveled, key/value structured logging
// used by cmd/evmil-disas, in the same call shape as the teacher's own
// log package (log.Info(msg, "key", value, ...)), layered over the
// standard library's slog, with terminal detection done the way the
// teacher does it for its CLI output.
package evmlog

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var root = New(os.Stderr)

// Logger wraps an slog.Logger with the key/value call shape the
// teacher's CLI commands use, rather than exposing slog's attribute
// API directly to callers.
type Logger struct {
	l *slog.Logger
}

// New builds a Logger writing text-formatted records to w, wrapping w
// with go-colorable when it is an interactive terminal. The slog text
// handler itself writes no color codes.
func New(w io.Writer) *Logger {
	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = colorable.NewColorable(f)
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{l: slog.New(h)}
}

// SetDefault replaces the package-level default logger used by
// Info/Warn/Error/Debug, mirroring the teacher's log.Root().SetHandler.
func SetDefault(l *Logger) { root = l }

// Root returns the package-level default logger.
func Root() *Logger { return root }

// SetLevel adjusts the minimum level l emits at.
func (l *Logger) SetLevel(level slog.Level) {
	h := slog.NewTextHandler(l.handlerOutput(), &slog.HandlerOptions{Level: level})
	l.l = slog.New(h)
}

// handlerOutput is unrecoverable once wrapped in an slog.Handler, so
// SetLevel rebuilds against stderr directly; callers that need a
// custom writer should construct a fresh Logger with New instead.
func (l *Logger) handlerOutput() io.Writer { return os.Stderr }

func (l *Logger) Debug(msg string, kv ...any) { l.l.Debug(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.l.Info(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.l.Warn(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.l.Error(msg, kv...) }

func Debug(msg string, kv ...any) { root.Debug(msg, kv...) }
func Info(msg string, kv ...any)  { root.Info(msg, kv...) }
func Warn(msg string, kv ...any)  { root.Warn(msg, kv...) }
func Error(msg string, kv ...any) { root.Error(msg, kv...) }
