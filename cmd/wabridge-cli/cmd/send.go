package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/wabridge/cmd/wabridge-cli/internal/output"
	"github.com/nfrund/wabridge/internal/client"
)

func newSendCmd(opts *options) *cobra.Command {
	var req client.SendRequest

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message through the relay",
		Long: `Send a text message, or a template when no text is given.
Without --text or --template the relay sends its default template.

Examples:
  wabridge-cli send --to 15551234567 --text "hello"
  wabridge-cli send --to 15551234567 --template hello_world`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.client().Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := output.JSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Success {
				return errors.New("send failed")
			}
			if result.Mocked {
				fmt.Fprintln(cmd.ErrOrStderr(), "Note: the relay has no send credentials; nothing was delivered.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.To, "to", "", "Recipient phone number")
	cmd.Flags().StringVar(&req.Text, "text", "", "Message text")
	cmd.Flags().StringVar(&req.TemplateName, "template", "", "Template name, used when --text is empty")
	cmd.Flags().StringVar(&req.Token, "token", "", "Access token overriding the relay's configured one")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
