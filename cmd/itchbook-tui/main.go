// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
	"github.com/luke-a-thompson/itchbook/internal/feed"
	"github.com/luke-a-thompson/itchbook/internal/source"
	"github.com/luke-a-thompson/itchbook/internal/tui"
)

var (
	inputPath     string
	refreshMillis int
)

func main() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "ITCH file to replay into the dashboard")
	rootCmd.MarkFlagRequired("input")
	rootCmd.Flags().IntVar(&refreshMillis, "refresh-ms", 250, "Dashboard refresh period in milliseconds")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "itchbook-tui",
	Short: "itchbook-tui is a live terminal dashboard over an ITCH order book",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := source.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()

		mgr := book.NewManager()
		dir := directory.New()
		runner := feed.New(f, mgr, dir)

		go func() {
			if err := runner.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "itchbook-tui: feed runner: %s\n", err.Error())
			}
		}()

		// The dashboard only discovers locates after the directory starts
		// filling in; a brief settle gives the first page something to show.
		time.Sleep(50 * time.Millisecond)

		return tui.Run(tui.Config{
			Manager:       mgr,
			Directory:     dir,
			Locates:       dir.Locates(),
			RefreshPeriod: time.Duration(refreshMillis) * time.Millisecond,
		})
	},
}
