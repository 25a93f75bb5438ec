package cli

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/CAFxX/httpcompression"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/store"
	"tasklist/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task list server",
		Long: strings.TrimSpace(`
Run the task list HTTP server.

All state lives in memory and is gone when the process exits. The UI is
server-rendered HTML; mutations respond with fragments and every connected
browser is kept current over an event stream.
`),
		Example: strings.TrimSpace(`
# Serve on the default address
tasklist serve

# Serve on a specific port and open the browser
tasklist serve --addr :8080 --open

# Start with seeded items
tasklist serve --config ./tasklist.toml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{
				Level:           charmlog.InfoLevel,
				Prefix:          "tasklist",
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Formatter:       charmlog.TextFormatter,
			})

			cfg, err := config.Load(app.ConfigPath, config.Default())
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = cfg.Server.Addr
			}

			st := store.New(store.Options{MaxTitleLen: cfg.List.MaxTitleLength})
			for _, seed := range cfg.List.Seed {
				if _, err := st.Create(seed); err != nil {
					logger.Warn("skipping seed title", "title", seed, "err", err)
				}
			}

			srv, err := web.NewServer(web.ServerConfig{
				PageTitle: cfg.List.PageTitle,
				Store:     st,
				Logger:    logger,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			// The event stream stays out of the compressed set so frames
			// reach the browser as they are written.
			compress, err := httpcompression.DefaultAdapter(
				httpcompression.ContentTypes([]string{"text/html", "text/css", "text/plain"}, false),
			)
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			hints := []string{}
			if !opened {
				hints = append(hints, "open "+url)
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"items":     st.Len(),
					"config":    strings.TrimSpace(app.ConfigPath),
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": hints,
			})

			logger.Info("listening", "url", url, "items", st.Len())
			fmt.Fprintf(cmd.ErrOrStderr(), "Tasklist running at %s\n", url)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			return http.Serve(ln, compress(srv.Handler()))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("TASKLIST_ADDR", ""), "Bind address (host:port or :port; overrides config)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the UI in your default browser")
	return cmd
}
