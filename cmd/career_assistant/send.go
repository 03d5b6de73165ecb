package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-assistant/internal/config"
	"github.com/jonathan/career-assistant/internal/dispatch"
	"github.com/jonathan/career-assistant/internal/types"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a generated document over SMTP",
	Long: `Sends a document to a recipient using the sender's email provider.
The provider is derived from the sender's address domain; an app password
is required (flag, SMTP_APP_PASSWORD env var, or config file).

If the document starts with a "Subject:" line it becomes the email
subject; otherwise a subject is derived from the first line.`,
	RunE: runSend,
}

var (
	sendConfigPath  string
	sendFrom        string
	sendSenderName  string
	sendAppPassword string
	sendTo          string
	sendInFile      string
)

func init() {
	sendCmd.Flags().StringVar(&sendConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "Sender email address")
	sendCmd.Flags().StringVar(&sendSenderName, "sender-name", "", "Display name on the outgoing mail")
	sendCmd.Flags().StringVar(&sendAppPassword, "app-password", "", "App password for the sender account (defaults to SMTP_APP_PASSWORD env var)")
	sendCmd.Flags().StringVarP(&sendTo, "to", "t", "", "Recipient email address (required)")
	sendCmd.Flags().StringVarP(&sendInFile, "in", "i", "", "Path to the document to send (required)")

	if err := sendCmd.MarkFlagRequired("to"); err != nil {
		panic(err)
	}
	if err := sendCmd.MarkFlagRequired("in"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(sendCmd)
}

func runSend(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if sendConfigPath != "" {
		loaded, err := config.LoadConfig(sendConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	from := sendFrom
	if from == "" {
		from = cfg.SenderEmail
	}
	if from == "" {
		return fmt.Errorf("a sender address is required (use --from or 'sender_email' in the config file)")
	}

	senderName := sendSenderName
	if senderName == "" {
		senderName = cfg.SenderName
	}

	appPassword := sendAppPassword
	if appPassword == "" {
		appPassword = os.Getenv("SMTP_APP_PASSWORD")
	}
	if appPassword == "" {
		return fmt.Errorf("an app password is required (use --app-password or the SMTP_APP_PASSWORD env var)")
	}

	content, err := os.ReadFile(sendInFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	result := &types.GenerationResult{NormalizedText: string(content)}
	account := dispatch.Account{
		Address:     from,
		AppPassword: appPassword,
		Name:        senderName,
	}

	if err := dispatch.Send(context.Background(), result, account, sendTo); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Email sent to %s\n", sendTo)
	return nil
}
