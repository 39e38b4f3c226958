package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"talent-hive/internal/app"
	"talent-hive/internal/config"
	"talent-hive/internal/mailer"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an interview preparation email",
	RunE:  runSend,
}

var (
	sendEmail   string
	sendName    string
	sendCompany string
	sendTitle   string
	sendTimeout time.Duration
)

func init() {
	sendCmd.Flags().StringVarP(&sendEmail, "email", "e", "", "Recipient address (required)")
	sendCmd.Flags().StringVarP(&sendName, "name", "n", "", "Student name used in the greeting")
	sendCmd.Flags().StringVarP(&sendCompany, "company", "c", "", "Company name (required)")
	sendCmd.Flags().StringVarP(&sendTitle, "title", "t", "", "Job title (required)")
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 30*time.Second, "Lookup and delivery timeout")

	for _, name := range []string{"email", "company", "title"} {
		if err := sendCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to init container: %w", err)
	}
	defer func() {
		_ = c.Close(context.Background())
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), sendTimeout)
	defer cancel()

	req := mailer.PrepRequest{
		StudentName: strings.TrimSpace(sendName),
		Email:       strings.TrimSpace(sendEmail),
		JobTitle:    strings.TrimSpace(sendTitle),
		CompanyName: strings.TrimSpace(sendCompany),
	}
	if err := c.Dispatcher.SendInterviewPrep(ctx, req); err != nil {
		return fmt.Errorf("failed to send interview preparation resources: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sent interview prep to %s\n", req.Email)
	return nil
}
