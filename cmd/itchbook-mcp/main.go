// Copyright (c) 2024 Neomantra Corp
//
// This is a Model Context Protocol (MCP) server exposing a live ITCH
// order book: an LLM client can look up a ticker's stock_locate and query
// its best bid/ask, spread, and level depth as the file replays.

package main

import (
	"fmt"
	"log/slog"
	"os"

	mcp_server "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
	"github.com/luke-a-thompson/itchbook/internal/feed"
	"github.com/luke-a-thompson/itchbook/internal/mcptools"
	"github.com/luke-a-thompson/itchbook/internal/source"
)

const (
	mcpServerVersion = "0.0.1"

	defaultSSEHostPort = ":8890"
)

type Config struct {
	InputPath string

	LogJSON bool
	Verbose bool

	UseSSE      bool
	SSEHostPort string
}

var config Config
var logger *slog.Logger

func main() {
	var showHelp bool
	var logFilename string

	pflag.StringVarP(&config.InputPath, "input", "i", "", "Input ITCH file to replay and serve (.gz and .zst are auto-detected)")
	pflag.StringVarP(&logFilename, "log-file", "l", "", "Log file destination (default is stderr)")
	pflag.BoolVarP(&config.LogJSON, "log-json", "j", false, "Log in JSON (default is plaintext)")
	pflag.StringVarP(&config.SSEHostPort, "port", "p", "", "host:port to listen to SSE connections")
	pflag.BoolVarP(&config.UseSSE, "sse", "", false, "Use SSE Transport (default is STDIO transport)")
	pflag.BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s -i <itch_file> [opts]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}

	if config.InputPath == "" {
		fmt.Fprintf(os.Stderr, "missing input file, use --input\n")
		os.Exit(1)
	}

	if config.SSEHostPort == "" {
		config.SSEHostPort = defaultSSEHostPort
	}

	logWriter := os.Stderr
	if logFilename != "" {
		logFile, err := os.OpenFile(logFilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %s\n", err.Error())
			os.Exit(1)
		}
		logWriter = logFile
		defer logFile.Close()
	}

	logLevel := slog.LevelInfo
	if config.Verbose {
		logLevel = slog.LevelDebug
	}
	if config.LogJSON {
		logger = slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: logLevel}))
	} else {
		logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: logLevel}))
	}

	if err := run(); err != nil {
		logger.Error("run loop error", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	f, err := source.Open(config.InputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	mgr := book.NewManager()
	dir := directory.New()
	runner := feed.New(f, mgr, dir)
	runner.SetLogger(logger)

	go func() {
		if err := runner.Run(); err != nil {
			logger.Error("feed runner stopped", "error", err.Error())
		}
	}()

	mcpServer := mcp_server.NewMCPServer("itchbook-mcp", mcpServerVersion)
	mcptools.New(mgr, dir).Register(mcpServer)

	if config.UseSSE {
		sseServer := mcp_server.NewSSEServer(mcpServer)
		logger.Info("MCP SSE server started", "hostPort", config.SSEHostPort)
		if err := sseServer.Start(config.SSEHostPort); err != nil {
			return fmt.Errorf("MCP SSE server error: %w", err)
		}
	} else {
		logger.Info("MCP STDIO server started")
		if err := mcp_server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("MCP STDIO server error: %w", err)
		}
	}

	return nil
}
