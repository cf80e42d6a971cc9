// Copyright (c) 2024 Neomantra Corp
//
// Analytical snapshots: dumps of book and directory state into an Arrow
// record batch, and into a table of an embedded DuckDB connection for
// downstream querying. No Parquet file is written. This is the one part of the system that
// leaves memory-only territory (§6 "Persisted state: None" applies to the
// core; snapshotting is an explicit external collaborator, same as the
// TUI and the CLI).

package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/luke-a-thompson/itchbook"
	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
)

// BookRow is one row of a book snapshot: the best bid/ask for one ticker
// at the moment the snapshot was taken.
type BookRow struct {
	StockLocate uint16      `json:"stock_locate"`
	Ticker      string      `json:"ticker"`
	BestBid     itch.Price4 `json:"best_bid"`
	BestAsk     itch.Price4 `json:"best_ask"`
	Spread      itch.Price4 `json:"spread"`
}

var bookSchema = arrow.NewSchema([]arrow.Field{
	{Name: "stock_locate", Type: arrow.PrimitiveTypes.Uint16},
	{Name: "ticker", Type: arrow.BinaryTypes.String},
	{Name: "best_bid", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "best_ask", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "spread", Type: arrow.PrimitiveTypes.Uint32},
}, nil)

// Collect walks the given locates and builds one BookRow per locate that
// has both a directory entry in dir and a book in mgr (a directory entry
// with no book yet simply has not traded).
func Collect(mgr *book.Manager, dir *directory.Directory, locates []uint16) []BookRow {
	rows := make([]BookRow, 0, len(locates))
	for _, locate := range locates {
		ticker, ok := dir.Ticker(locate)
		if !ok {
			continue
		}
		b, ok := mgr.Book(locate)
		if !ok {
			continue
		}
		bid, _ := b.BestBid()
		ask, _ := b.BestAsk()
		rows = append(rows, BookRow{
			StockLocate: locate,
			Ticker:      ticker.String(),
			BestBid:     bid,
			BestAsk:     ask,
			Spread:      b.Spread(),
		})
	}
	return rows
}

// BuildRecord materializes rows into an Arrow record batch using the
// default memory allocator.
func BuildRecord(rows []BookRow) arrow.Record {
	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, bookSchema)
	defer builder.Release()

	locateBuilder := builder.Field(0).(*array.Uint16Builder)
	tickerBuilder := builder.Field(1).(*array.StringBuilder)
	bidBuilder := builder.Field(2).(*array.Uint32Builder)
	askBuilder := builder.Field(3).(*array.Uint32Builder)
	spreadBuilder := builder.Field(4).(*array.Uint32Builder)

	for _, r := range rows {
		locateBuilder.Append(r.StockLocate)
		tickerBuilder.Append(r.Ticker)
		bidBuilder.Append(uint32(r.BestBid))
		askBuilder.Append(uint32(r.BestAsk))
		spreadBuilder.Append(uint32(r.Spread))
	}

	return builder.NewRecord()
}

// Store wraps an embedded DuckDB connection used to query exported
// snapshot rows without round-tripping through a file on disk, for ad-hoc
// "top movers by spread"-style exploration (cmd/itchbook-file's snapshot
// command uses it).
type Store struct {
	db *sql.DB
}

// Open creates or attaches a DuckDB database at path (":memory:" for an
// ephemeral store) and ensures the book_snapshots table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("itchbook: open duckdb %s: %w", path, err)
	}
	const ddl = `CREATE TABLE IF NOT EXISTS book_snapshots (
		taken_at     TIMESTAMP,
		stock_locate USMALLINT,
		ticker       VARCHAR,
		best_bid     UINTEGER,
		best_ask     UINTEGER,
		spread       UINTEGER
	)`
	if _, err := db.ExecContext(context.Background(), ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("itchbook: create book_snapshots: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying DuckDB connection.
func (s *Store) Close() error { return s.db.Close() }

// Insert appends rows to book_snapshots, stamping them with takenAtUnixNanos
// (passed in rather than computed here, since the core must stay free of
// wall-clock reads — see the ring buffer and framer, which never call
// time.Now either).
func (s *Store) Insert(ctx context.Context, takenAtUnixNanos int64, rows []BookRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO book_snapshots VALUES (to_timestamp($1 / 1e9), $2, $3, $4, $5, $6)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, takenAtUnixNanos, r.StockLocate, r.Ticker, uint32(r.BestBid), uint32(r.BestAsk), uint32(r.Spread)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// TopSpreads returns the n tickers with the widest spread in the most
// recent snapshot.
func (s *Store) TopSpreads(ctx context.Context, n int) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, `
		SELECT ticker, best_bid, best_ask, spread
		FROM book_snapshots
		WHERE taken_at = (SELECT max(taken_at) FROM book_snapshots)
		ORDER BY spread DESC
		LIMIT $1`, n)
}
