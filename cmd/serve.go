package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/devserver"
	"github.com/zjrosen/signup/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local registration backend",
	Long: `Run an in-memory server that answers POST /api/1.0/users the way the
real backend does: 200 for a new user, 400 with validation errors for missing
fields or a username that is already in use.

Example:
  signup serve                       # listen on server.addr (:8080)
  signup serve --addr :9090
  signup serve --latency 2s          # keep the spinner on screen`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides server.addr)")
	serveCmd.Flags().Duration("latency", 0, "delay every response (overrides server.latency)")
	serveCmd.Flags().StringSlice("reject", nil, "usernames always rejected (overrides server.reject_usernames)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	sc := cfg.Server
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		sc.Addr = v
	}
	if cmd.Flags().Changed("latency") {
		sc.Latency, _ = cmd.Flags().GetDuration("latency")
	}
	if cmd.Flags().Changed("reject") {
		sc.RejectUsernames, _ = cmd.Flags().GetStringSlice("reject")
	}
	if sc.Latency < 0 {
		return fmt.Errorf("latency must not be negative, got %s", sc.Latency)
	}

	srv := devserver.New(devserver.Config{
		Latency:         sc.Latency,
		RejectUsernames: sc.RejectUsernames,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "signup dev server listening on %s\n", sc.Addr)
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	if err := devserver.ListenAndServe(ctx, sc.Addr, srv.Handler()); err != nil {
		return err
	}

	log.Info(log.CatServer, "Server stopped", "users", len(srv.Users()))
	_, _ = fmt.Fprintf(out, "\nServer stopped (%d users registered)\n", len(srv.Users()))
	return nil
}
