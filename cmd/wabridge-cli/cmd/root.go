package cmd

import (
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/wabridge/internal/client"
)

const defaultAddr = "http://localhost:3001"

// options holds the global flags shared by every subcommand.
type options struct {
	addr    string
	timeout time.Duration
	fs      afero.Fs
}

func (o *options) client() *client.Client {
	return client.New(o.addr, o.timeout)
}

// NewRootCmd builds the command tree. Files are written through fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "wabridge-cli",
		Short: "wabridge CLI tool",
		Long: `wabridge-cli talks to a running relay over its HTTP API.

Available commands:
  messages   List, clear or export the message log
  send       Send a text or template message
  status     Show the relay's health report
  topics     List the event bus topics
  version    Print the CLI version

Use "wabridge-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}

	addr := os.Getenv("WABRIDGE_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	rootCmd.PersistentFlags().StringVar(&opts.addr, "addr", addr, "Base URL of the relay (env WABRIDGE_ADDR)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 20*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(
		newMessagesCmd(opts),
		newSendCmd(opts),
		newStatusCmd(opts),
		newTopicsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
