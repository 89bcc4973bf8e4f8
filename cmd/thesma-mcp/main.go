package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thesma/thesma-mcp/internal/thesma/client"
	"github.com/thesma/thesma-mcp/internal/thesma/common"
	"github.com/thesma/thesma-mcp/internal/thesma/resolver"
)

// App holds the shared resources every tool handler closes over: the API
// client, the ticker resolver (with its process-lifetime cache), and the
// logger.
type App struct {
	Client   *client.Client
	Resolver *resolver.Resolver
	Logger   *common.Logger
}

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "thesma-mcp.toml", "Path to config file")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := common.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("%v", err)
	}

	common.LoadVersionFromFile()

	logger := common.NewLoggerFromConfig(cfg.Logging)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	apiClient, err := client.New(cfg.API, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &App{
		Client:   apiClient,
		Resolver: resolver.New(apiClient),
		Logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	registerTools(mcpServer, app)

	if *stdio || cfg.Server.Transport != "http" {
		// Stdio transport — reads stdin, writes stdout
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	port := cfg.Server.Port

	// Streamable HTTP transport — listens on configured port
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	logger.Info().Str("port", port).Msg("Starting MCP Streamable HTTP")
	fmt.Fprintf(os.Stderr, "Starting MCP Streamable HTTP on :%s\n", port)

	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
