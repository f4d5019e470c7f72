// Package log provides centralised audit logging for svnparse operations.
// Logs are stored in ~/.svnparse/log/svnparse-log.db and track parse runs
// across repositories, from the CLI and from the svnparse_parse MCP tool.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("parse:commit", "parse").
//		Repo(repoURI).
//		Revision(rev).
//		Write(err)
//
//	log.Event("mcp:svnparse_query", "query").
//		Repo(repoURI).
//		Detail("revision", rev).
//		Detail("rows", len(rows)).
//		Write(err)
//
// The source parameter follows the format "{component}:{operation}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "parse:commit",
// "mcp:svnparse_parse", "mcp:svnparse_query".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g., "parse:commit", "mcp:svnparse_query"
	Action   string // verb: parse, query, serve, etc.
	Repo     string // input: repository root URI
	Revision int64  // input: revision being parsed or queried

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{component}:{operation}" (e.g., "parse:commit", "cmd:config")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:svnparse_parse", "mcp:svnparse_query")
//
// The action describes what operation was performed:
//   - "parse", "query", "serve", "config", etc.
//
// Example:
//
//	log.Event("parse:commit", "parse").
//		Repo(repoURI).
//		Revision(rev).
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Repo sets the repository root URI this operation affects.
//
// Example:
//
//	log.Event("parse:commit", "parse").Repo(repoURI)
func (b *Builder) Repo(repo string) *Builder {
	b.entry.Repo = repo
	return b
}

// Revision sets the revision this operation affects.
//
// Example:
//
//	log.Event("parse:commit", "parse").Repo(repoURI).Revision(rev)
func (b *Builder) Revision(rev int64) *Builder {
	b.entry.Revision = rev
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// effect counts, batch sizes, timing breakdowns, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("parse:commit", "parse").
//		Detail("effects", len(effects)).
//		Detail("batches", batchCount)
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
//
// Example:
//
//	_, err := svc.Parse(ctx, repoURI, rev)
//	log.Event("parse:commit", "parse").Repo(repoURI).Revision(rev).Write(err)
//	return err
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
