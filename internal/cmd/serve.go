package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wethinkt/go-palettepro/internal/config"
	"github.com/wethinkt/go-palettepro/internal/i18n"
	"github.com/wethinkt/go-palettepro/internal/palette"
	"github.com/wethinkt/go-palettepro/internal/server"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// Serve command flags
var (
	servePort   int
	serveHost   string
	serveNoOpen bool
	serveQuiet  bool
	serveToken  string
	serveWatch  bool
)

// Serve mcp subcommand flags
var (
	mcpPort       int
	mcpHost       string
	mcpToken      string
	mcpAllowTools []string
	mcpDenyTools  []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local palette server",
	Long: `Start a local HTTP server for palette generation.

The server provides:
  - REST API under /api/v1 (palettes, colors, search, export, themes)
  - WebSocket generation stream at /api/v1/ws
  - MCP over SSE at /mcp
  - Prometheus metrics at /metrics

User categories in ~/.palettepro/categories.toml are reloaded when the
file changes.

Use 'palettepro serve mcp' for an MCP server on stdio.

Examples:
  palettepro serve                    # Start on the default port 8790
  palettepro serve -p 8080            # Start on a custom port
  palettepro serve --no-open          # Don't open the browser
  palettepro serve --token xyz        # Require a bearer token`,
	Args: cobra.NoArgs,
	RunE: runServeHTTP,
}

var serveMcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server for AI tool integration",
	Long: `Start an MCP (Model Context Protocol) server exposing palette tools.

By default, runs on stdio for use with desktop MCP clients.
Use --port to serve SSE over HTTP instead.

Tools: ` + strings.Join(server.ToolNames, ", ") + `

Examples:
  palettepro serve mcp                               # stdio
  palettepro serve mcp --port 8791                   # SSE over HTTP
  palettepro serve mcp --allow-tools generate_palette,color_shades`,
	Args: cobra.NoArgs,
	RunE: runServeMCP,
}

var serveTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a secure authentication token",
	Long: `Generate a random token for API and MCP authentication.

Examples:
  palettepro serve token
  export PALETTEPRO_TOKEN=$(palettepro serve token)`,
	Args: cobra.NoArgs,
	RunE: runServeToken,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List running palettepro servers",
	Args:  cobra.NoArgs,
	RunE:  runServeStatus,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config, 8790)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind (default from config, localhost)")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "don't open the browser")
	serveCmd.Flags().BoolVarP(&serveQuiet, "quiet", "q", false, "disable HTTP access logging")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "bearer token required by API and MCP routes (or "+server.TokenEnvVar+")")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload user categories when the file changes")

	serveMcpCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve SSE on this port instead of stdio")
	serveMcpCmd.Flags().StringVar(&mcpHost, "host", "localhost", "host to bind in SSE mode")
	serveMcpCmd.Flags().StringVar(&mcpToken, "token", "", "bearer token required in SSE mode (or "+server.TokenEnvVar+")")
	serveMcpCmd.Flags().StringSliceVar(&mcpAllowTools, "allow-tools", nil, "only expose these tools")
	serveMcpCmd.Flags().StringSliceVar(&mcpDenyTools, "deny-tools", nil, "hide these tools")

	serveCmd.AddCommand(serveMcpCmd, serveTokenCmd, serveStatusCmd)
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// watchCategories reloads the builder's user categories until ctx ends.
func watchCategories(ctx context.Context, path string, reg *palette.Registry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return palette.WatchPolicies(ctx, path, reg, func(n int, err error) {
		if err != nil {
			tuilog.Log.Warn("Reloading categories failed", "path", path, "error", err)
			return
		}
		tuilog.Log.Info("Reloaded categories", "path", path, "count", n)
	})
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	cfg, b := loadBuilder()

	scfg := server.DefaultConfig()
	scfg.Host = cfg.Server.Host
	scfg.Port = cfg.Server.Port
	if serveHost != "" {
		scfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		scfg.Port = servePort
	}
	scfg.Quiet = serveQuiet
	scfg.Token = serveToken
	scfg.GenerationDelay = cfg.GenerationDelayDuration()
	scfg.Jitter = cfg.Related
	scfg.Register = true

	if logPath == "" {
		if path, err := defaultServeLog(); err == nil && os.MkdirAll(filepath.Dir(path), 0755) == nil {
			if err := tuilog.InitLevel(path, tuilog.ParseLevel(logLevel)); err == nil {
				logPath = path
			}
		}
	}
	scfg.LogPath = logPath

	tuilog.Log.Info("Starting HTTP server", "host", scfg.Host, "port", scfg.Port)

	ctx, cancel := signalContext()
	defer cancel()

	srv := server.New(b, scfg)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx) })

	if serveWatch {
		if path, err := cfg.CategoriesPath(); err == nil {
			g.Go(func() error {
				if err := watchCategories(ctx, path, b.Generator().Registry()); err != nil {
					tuilog.Log.Warn("Category watch stopped", "error", err)
				}
				return nil
			})
		}
	}

	fmt.Fprintln(os.Stderr, i18n.T("cmd.serve.starting", "🎨 palettepro server starting..."))
	if !serveNoOpen {
		go func() {
			time.Sleep(300 * time.Millisecond)
			url := fmt.Sprintf("http://%s", srv.Addr())
			fmt.Fprintln(os.Stderr, i18n.Tf("cmd.serve.opening", "🌐 Opening %s in browser...", url))
			openBrowser(url)
		}()
	}

	err := g.Wait()
	tuilog.Log.Info("Server stopped", "error", err)
	return err
}

func runServeMCP(cmd *cobra.Command, args []string) error {
	cfg, b := loadBuilder()
	ms := server.NewMCPServerWithFilters(b, cfg.Related, mcpAllowTools, mcpDenyTools)

	ctx, cancel := signalContext()
	defer cancel()

	if mcpPort == 0 {
		fmt.Fprintln(os.Stderr, i18n.T("cmd.serve.mcpStdio", "Starting MCP server on stdio..."))
		tuilog.Log.Info("Running MCP server on stdio")
		err := ms.RunStdio(ctx)
		tuilog.Log.Info("MCP server exited", "error", err)
		// EOF on stdin is a client disconnect.
		if err != nil && (errors.Is(err, io.EOF) || strings.Contains(err.Error(), "EOF")) {
			return nil
		}
		return err
	}

	addr := net.JoinHostPort(mcpHost, fmt.Sprint(mcpPort))
	if existing := config.FindInstanceByPort(mcpPort); existing != nil {
		return fmt.Errorf("port %d is already in use by palettepro %s (PID %d)", mcpPort, existing.Type, existing.PID)
	}
	auth := server.NewBearerAuth(mcpToken)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           auth.Middleware(ms.SSEHandler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := config.RegisterInstance(config.Instance{
		Type:      config.InstanceServeMCP,
		PID:       os.Getpid(),
		Port:      mcpPort,
		Host:      mcpHost,
		Auth:      auth.Enabled(),
		LogPath:   logPath,
		StartedAt: time.Now(),
	}); err != nil {
		tuilog.Log.Warn("Failed to register MCP instance", "error", err)
	}
	defer config.UnregisterInstance(os.Getpid())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tuilog.Log.Info("Running MCP server over SSE", "addr", addr)
		fmt.Fprintf(os.Stderr, "MCP server (SSE) at http://%s\n", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runServeToken(cmd *cobra.Command, args []string) error {
	token, err := server.GenerateSecureToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runServeStatus(cmd *cobra.Command, args []string) error {
	instances, err := config.ListInstances()
	if err != nil {
		return err
	}
	if outputJSON {
		if instances == nil {
			instances = []config.Instance{}
		}
		return writeJSON(cmd.OutOrStdout(), instances)
	}

	w := cmd.OutOrStdout()
	if len(instances) == 0 {
		fmt.Fprintln(w, i18n.T("cmd.serve.none", "No palettepro servers running"))
		return nil
	}
	for _, inst := range instances {
		lock := ""
		if inst.Auth {
			lock = " 🔒"
		}
		fmt.Fprintf(w, "%-10s pid %-7d %-28s %s%s\n", inst.Type, inst.PID, inst.URL(), i18n.RelativeTime(inst.StartedAt), lock)
	}
	return nil
}

// openBrowser opens a URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		fmt.Fprintf(os.Stderr, "Please open %s in your browser\n", url)
		return
	}
	cmd.Start()
}
