// Copyright (c) 2024 Neomantra Corp
//
// MCP tools exposing the live order book and stock directory to an LLM
// client: best_bid, best_ask, spread, level_depth, lookup_locate and
// list_directory, mirroring the read-only observer access pattern the TUI
// and websocket relay already use against book.Manager/directory.Directory.

package mcptools

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcp_server "github.com/mark3labs/mcp-go/server"
	"github.com/segmentio/encoding/json"

	"github.com/luke-a-thompson/itchbook"
	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
)

// Server holds the shared state every tool handler reads. It never mutates
// manager or dir; only the feed.Runner consumer goroutine does that.
type Server struct {
	manager   *book.Manager
	directory *directory.Directory
}

// New returns a Server bound to a live manager and directory.
func New(manager *book.Manager, dir *directory.Directory) *Server {
	return &Server{manager: manager, directory: dir}
}

// Register adds every itchbook tool to mcpServer.
func (s *Server) Register(mcpServer *mcp_server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("lookup_locate",
		mcp.WithDescription("Resolves a ticker symbol to its session stock_locate code"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol, e.g. AAPL"),
		),
	), s.lookupLocateHandler)

	mcpServer.AddTool(mcp.NewTool("list_directory",
		mcp.WithDescription("Lists every ticker registered so far this session, with its stock_locate code"),
	), s.listDirectoryHandler)

	mcpServer.AddTool(mcp.NewTool("best_bid",
		mcp.WithDescription("Returns the best (highest) resting bid price for a stock_locate"),
		mcp.WithString("stock_locate",
			mcp.Required(),
			mcp.Description("Numeric stock_locate code, from lookup_locate"),
		),
	), s.bestBidHandler)

	mcpServer.AddTool(mcp.NewTool("best_ask",
		mcp.WithDescription("Returns the best (lowest) resting ask price for a stock_locate"),
		mcp.WithString("stock_locate",
			mcp.Required(),
			mcp.Description("Numeric stock_locate code, from lookup_locate"),
		),
	), s.bestAskHandler)

	mcpServer.AddTool(mcp.NewTool("spread",
		mcp.WithDescription("Returns the best_ask - best_bid spread for a stock_locate"),
		mcp.WithString("stock_locate",
			mcp.Required(),
			mcp.Description("Numeric stock_locate code, from lookup_locate"),
		),
	), s.spreadHandler)

	mcpServer.AddTool(mcp.NewTool("level_depth",
		mcp.WithDescription("Returns the total resting share count at a given price on a given side"),
		mcp.WithString("stock_locate",
			mcp.Required(),
			mcp.Description("Numeric stock_locate code, from lookup_locate"),
		),
		mcp.WithString("side",
			mcp.Required(),
			mcp.Description("Order side"),
			mcp.Enum("buy", "sell"),
		),
		mcp.WithString("price",
			mcp.Required(),
			mcp.Description("Price as a decimal string, e.g. 101.2500"),
		),
	), s.levelDepthHandler)
}

// parseLocate extracts and validates the stock_locate argument shared by
// every per-instrument tool, returning a tool-result error (not a Go error)
// so the LLM can see and reason about validation failures.
func parseLocate(request mcp.CallToolRequest) (uint16, *mcp.CallToolResult) {
	raw, err := request.RequireString("stock_locate")
	if err != nil {
		return 0, mcp.NewToolResultError("stock_locate must be set")
	}
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, mcp.NewToolResultErrorf("stock_locate must be a uint16: %s", err)
	}
	return uint16(n), nil
}

func (s *Server) lookupLocateHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tickerStr, err := request.RequireString("ticker")
	if err != nil {
		return mcp.NewToolResultError("ticker must be set"), nil
	}
	locate, ok := s.directory.Locate(itch.NewTicker(strings.ToUpper(tickerStr)))
	if !ok {
		return mcp.NewToolResultErrorf("unknown ticker: %s", tickerStr), nil
	}
	jbytes, err := json.Marshal(map[string]any{"ticker": tickerStr, "stock_locate": locate})
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal result: %s", err), nil
	}
	return mcp.NewToolResultText(string(jbytes)), nil
}

func (s *Server) listDirectoryHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type entry struct {
		Ticker      string `json:"ticker"`
		StockLocate uint16 `json:"stock_locate"`
	}
	locates := s.directory.Locates()
	entries := make([]entry, 0, len(locates))
	for _, locate := range locates {
		ticker, ok := s.directory.Ticker(locate)
		if !ok {
			continue
		}
		entries = append(entries, entry{Ticker: strings.TrimSpace(ticker.String()), StockLocate: locate})
	}
	jbytes, err := json.Marshal(entries)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal result: %s", err), nil
	}
	return mcp.NewToolResultText(string(jbytes)), nil
}

func (s *Server) bestBidHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locate, errResult := parseLocate(request)
	if errResult != nil {
		return errResult, nil
	}
	price, ok := s.manager.BestBid(locate)
	if !ok {
		return mcp.NewToolResultText(`{"best_bid":null}`), nil
	}
	return mcp.NewToolResultText(`{"best_bid":"` + price.String() + `"}`), nil
}

func (s *Server) bestAskHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locate, errResult := parseLocate(request)
	if errResult != nil {
		return errResult, nil
	}
	price, ok := s.manager.BestAsk(locate)
	if !ok {
		return mcp.NewToolResultText(`{"best_ask":null}`), nil
	}
	return mcp.NewToolResultText(`{"best_ask":"` + price.String() + `"}`), nil
}

func (s *Server) spreadHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locate, errResult := parseLocate(request)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(`{"spread":"` + s.manager.Spread(locate).String() + `"}`), nil
}

func (s *Server) levelDepthHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locate, errResult := parseLocate(request)
	if errResult != nil {
		return errResult, nil
	}
	sideStr, err := request.RequireString("side")
	if err != nil {
		return mcp.NewToolResultError("side must be set"), nil
	}
	var side itch.Side
	switch sideStr {
	case "buy":
		side = itch.SideBuy
	case "sell":
		side = itch.SideSell
	default:
		return mcp.NewToolResultErrorf("side must be buy or sell, got %q", sideStr), nil
	}

	priceStr, err := request.RequireString("price")
	if err != nil {
		return mcp.NewToolResultError("price must be set"), nil
	}
	price, err := itch.ParsePrice4(priceStr)
	if err != nil {
		return mcp.NewToolResultErrorf("invalid price: %s", err), nil
	}

	depth := s.manager.LevelDepth(locate, side, price)
	return mcp.NewToolResultText(`{"depth":` + strconv.FormatUint(uint64(depth), 10) + `}`), nil
}
