package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"talent-hive/internal/app"
	"talent-hive/internal/config"
	"talent-hive/internal/scraper"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve interview resources for a company and job title",
	Long:  "Runs the same lookup the service uses. With --offline the links are synthesized without touching the database.",
	RunE:  runLookup,
}

var (
	lookupCompany string
	lookupTitle   string
	lookupOffline bool
	lookupRefresh bool
	lookupJSON    bool
)

func init() {
	lookupCmd.Flags().StringVarP(&lookupCompany, "company", "c", "", "Company name (required)")
	lookupCmd.Flags().StringVarP(&lookupTitle, "title", "t", "", "Job title (required)")
	lookupCmd.Flags().BoolVar(&lookupOffline, "offline", false, "Synthesize links only, no database or cache")
	lookupCmd.Flags().BoolVar(&lookupRefresh, "refresh", false, "Skip the stored record and re-synthesize")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Print a JSON array instead of one line per resource")

	if err := lookupCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}
	if err := lookupCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, _ []string) error {
	company := strings.TrimSpace(lookupCompany)
	title := strings.TrimSpace(lookupTitle)
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

	var resources []string
	if lookupOffline {
		resources = scraper.NewSynthesizer(logger).Synthesize(company, title)
		if len(resources) == 0 {
			resources = scraper.FallbackResources()
		}
	} else {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		c, err := app.NewContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to init container: %w", err)
		}
		defer func() {
			_ = c.Close(context.Background())
		}()

		if lookupRefresh {
			resources = c.Resources.RefreshInterviewResources(cmd.Context(), title, company)
		} else {
			resources = c.Resources.GetInterviewResources(cmd.Context(), title, company)
		}
	}

	return printResources(cmd, resources)
}

func printResources(cmd *cobra.Command, resources []string) error {
	out := cmd.OutOrStdout()
	if lookupJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resources)
	}
	for _, r := range resources {
		fmt.Fprintln(out, r)
	}
	return nil
}
