// Copyright (c) 2024 Neomantra Corp

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neomantra/ymdflag"
	"github.com/relvacode/iso8601"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/luke-a-thompson/itchbook"
	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
	"github.com/luke-a-thompson/itchbook/internal/feed"
	"github.com/luke-a-thompson/itchbook/internal/snapshot"
	"github.com/luke-a-thompson/itchbook/internal/source"
)

var (
	verbose    bool
	inputPath  string
	strictMode bool
	sessionYMD uint32
	asOfArg    string
	snapshotDB string
)

func requireNoError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

func main() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	decodeCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input ITCH file (.gz and .zst are auto-detected)")
	decodeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(decodeCmd)

	summaryCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input ITCH file (.gz and .zst are auto-detected)")
	summaryCmd.MarkFlagRequired("input")
	summaryCmd.Flags().BoolVar(&strictMode, "strict", false, "Exit 1 after the full replay if any frame was skipped; book errors do not affect the exit code")
	rootCmd.AddCommand(summaryCmd)

	snapshotCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input ITCH file (.gz and .zst are auto-detected)")
	snapshotCmd.MarkFlagRequired("input")
	snapshotCmd.Flags().StringVar(&snapshotDB, "db", ":memory:", "DuckDB database path for the exported snapshot (':memory:' for ephemeral)")
	snapshotCmd.Flags().Uint32Var(&sessionYMD, "session-date", 0, "Trading session date as YYYYMMDD (default: today)")
	snapshotCmd.Flags().StringVar(&asOfArg, "as-of", "", "ISO 8601 instant to stamp the snapshot row with (default: session-date midnight)")
	rootCmd.AddCommand(snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "itchbook-file",
	Short: "itchbook-file decodes ITCH 5.0 binary files",
	Long:  "itchbook-file decodes ITCH 5.0 binary files and reports on their contents",
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decodes and prints every record in the file as JSON, one per line",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := source.Open(inputPath)
		requireNoError(err)
		defer f.Close()

		scanner := itch.NewItchScanner(f)
		enc := json.NewEncoder(os.Stdout)
		for {
			rec, err := scanner.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					os.Exit(0)
				}
				fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
				os.Exit(1)
			}
			if err := enc.Encode(rec); err != nil {
				fmt.Fprintf(os.Stderr, "error: encode: %s\n", err.Error())
				os.Exit(1)
			}
		}
	},
}

// summaryCmd replays a file to EOF and prints the stats original_source's
// main.rs printed: message counts per type, then the final best bid/ask for
// every ticker the session registered.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Replays the file against an order-book manager and prints a final summary",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := source.Open(inputPath)
		requireNoError(err)
		defer f.Close()

		mgr := book.NewManager()
		dir := directory.New()
		runner := feed.New(f, mgr, dir)

		if err := runner.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
			os.Exit(1)
		}

		fmt.Println("message counts:")
		counts := runner.Counts()
		types := make([]itch.MessageType, 0, len(counts))
		for t := range counts {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		var total uint64
		for _, t := range types {
			n := counts[t]
			total += n
			fmt.Printf("  %-26s %s\n", itch.MessageTypeName(t), humanize.Comma(int64(n)))
		}
		fmt.Printf("  %-26s %s\n", "total", humanize.Comma(int64(total)))

		fmt.Println("final best bid/ask:")
		locates := dir.Locates()
		sort.Slice(locates, func(i, j int) bool { return locates[i] < locates[j] })
		for _, locate := range locates {
			ticker, _ := dir.Ticker(locate)
			bid, hasBid := mgr.BestBid(locate)
			ask, hasAsk := mgr.BestAsk(locate)
			bidStr, askStr := "n/a", "n/a"
			if hasBid {
				bidStr = bid.String()
			}
			if hasAsk {
				askStr = ask.String()
			}
			fmt.Printf("  %-10s bid=%-10s ask=%-10s spread=%s\n", ticker.String(), bidStr, askStr, mgr.Spread(locate).String())
		}

		fmt.Printf("directory entries: %d\n", dir.Len())
		fmt.Printf("resync events:     %d\n", runner.ResyncCount())
		fmt.Printf("skipped frames:    %d\n", runner.SkipCount())

		if strictMode && runner.SkipCount() > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	},
}

// snapshotCmd replays a file and exports a book-state snapshot (best
// bid/ask/spread per ticker) into a DuckDB database, stamped with the
// trading session date or an explicit as-of instant, for ad-hoc SQL
// exploration (the "analytical snapshots" of §1).
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Replays the file and exports a best-bid/ask snapshot to a DuckDB database",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := source.Open(inputPath)
		requireNoError(err)
		defer f.Close()

		mgr := book.NewManager()
		dir := directory.New()
		runner := feed.New(f, mgr, dir)
		requireNoError(runner.Run())

		takenAt := sessionTimestamp()

		store, err := snapshot.Open(snapshotDB)
		requireNoError(err)
		defer store.Close()

		rows := snapshot.Collect(mgr, dir, dir.Locates())
		requireNoError(store.Insert(context.Background(), takenAt, rows))

		fmt.Printf("wrote %d snapshot rows to %s, taken_at=%s\n", len(rows), snapshotDB, time.Unix(0, takenAt).UTC())
	},
}

// sessionTimestamp resolves the --as-of / --session-date flags to a single
// wall-clock instant, in the order ITCH's own session model prefers: an
// explicit as-of instant wins, then an explicit session date's midnight,
// then today's session date.
func sessionTimestamp() int64 {
	if asOfArg != "" {
		t, err := iso8601.ParseString(asOfArg)
		requireNoError(err)
		return t.UnixNano()
	}
	ymd := sessionYMD
	if ymd == 0 {
		ymd = ymdflag.TimeToYMD(time.Now().UTC())
	}
	year := int(ymd / 10000)
	month := time.Month((ymd / 100) % 100)
	day := int(ymd % 100)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixNano()
}
