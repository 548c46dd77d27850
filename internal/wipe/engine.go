// Package wipe implements the secure file-erasure engine: chunked
// pattern overwriting, the catalog of sanitization standards, the file
// session lifecycle, and the directory mark protocol used when whole
// trees are removed.
package wipe

import (
	"scour/internal/logging"
)

// DefaultChunkSize bounds the size of a single overwrite buffer. Files
// larger than this are rewritten in multiple chunks.
const DefaultChunkSize int64 = 1 << 20

// EngineOptions configures an Engine. The zero value of every field
// selects a sensible default.
type EngineOptions struct {
	// ChunkSize is the maximum single-write buffer size in bytes.
	ChunkSize int64

	// Listener receives progress events. Nil means no events.
	Listener Listener

	// Logger used for operational logging. Nil selects the default
	// application logger.
	Logger *logging.AppLogger
}

// Engine executes sanitization standards against files, directories
// and raw devices. An Engine is safe for concurrent use by independent
// removal requests; operations within one request run strictly in
// sequence.
type Engine struct {
	chunkSize int64
	listener  Listener
	logger    *logging.AppLogger
}

// NewEngine creates an engine. opts may be nil.
func NewEngine(opts *EngineOptions) *Engine {
	e := &Engine{
		chunkSize: DefaultChunkSize,
		listener:  NopListener{},
	}
	if opts != nil {
		if opts.ChunkSize > 0 {
			e.chunkSize = opts.ChunkSize
		}
		if opts.Listener != nil {
			e.listener = opts.Listener
		}
		e.logger = opts.Logger
	}
	if e.logger == nil {
		e.logger = logging.GetDefault()
	}
	return e
}

func (e *Engine) emit(kind EventKind, path string) {
	e.listener.Notify(Event{Kind: kind, Path: path})
}
