package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/nfrund/wabridge/cmd/wabridge-cli/internal/output"
	"github.com/nfrund/wabridge/internal/relay"
	"github.com/nfrund/wabridge/internal/topicmgr"
	"github.com/nfrund/wabridge/internal/websocket"
)

func newTopicsCmd() *cobra.Command {
	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "Explore the relay's event bus topics",
		Long: `Topics are the channels the relay publishes on internally: the push-channel
broadcast, client lifecycle events and send outcomes.

Examples:
  wabridge-cli topics list
  wabridge-cli topics list --scope framework
  wabridge-cli topics list --module relay --format json`,
	}
	topicsCmd.AddCommand(newTopicsListCmd())
	return topicsCmd
}

func newTopicsListCmd() *cobra.Command {
	var format, module, scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.CheckFormat(format); err != nil {
				return err
			}

			manager := topicmgr.NewManager()
			if err := websocket.RegisterTopicsWithManager(manager); err != nil {
				return fmt.Errorf("register topics: %w", err)
			}
			if err := relay.RegisterTopicsWithManager(manager); err != nil {
				return fmt.Errorf("register topics: %w", err)
			}

			topics, err := filterTopics(manager, scope, module)
			if err != nil {
				return err
			}

			if format == output.FormatJSON {
				return output.TopicsJSON(cmd.OutOrStdout(), topics)
			}
			output.Topics(cmd.OutOrStdout(), topics)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", output.FormatTable, "Output format (table, json)")
	cmd.Flags().StringVarP(&module, "module", "m", "", "Filter topics by module name")
	cmd.Flags().StringVarP(&scope, "scope", "s", "", "Filter topics by scope (framework, module)")
	return cmd
}

// filterTopics applies the --scope and --module filters. Both may be set.
func filterTopics(manager *topicmgr.Manager, scope, module string) ([]topicmgr.Topic, error) {
	if scope == "" {
		if module == "" {
			return manager.List(), nil
		}
		return manager.ListByModule(module), nil
	}

	s, err := parseScope(scope)
	if err != nil {
		return nil, err
	}
	topics := manager.ListByScope(s)
	if module != "" {
		topics = lo.Filter(topics, func(t topicmgr.Topic, _ int) bool { return t.Module() == module })
	}
	return topics, nil
}

// parseScope converts string scope to topicmgr.TopicScope
func parseScope(scope string) (topicmgr.TopicScope, error) {
	switch strings.ToLower(scope) {
	case "framework":
		return topicmgr.ScopeFramework, nil
	case "module":
		return topicmgr.ScopeModule, nil
	default:
		return "", fmt.Errorf("invalid scope %q, valid scopes: framework, module", scope)
	}
}
