package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crptlabs/crptgate/pkg/config"
	"crptlabs/crptgate/pkg/journal"
)

var (
	journalListLimit      int
	journalPruneOlderThan time.Duration
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect and maintain the submission journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled submissions, newest first",
	RunE:  runJournalList,
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete journal entries older than the given age",
	RunE:  runJournalPrune,
}

func init() {
	journalListCmd.Flags().IntVarP(&journalListLimit, "limit", "l", 20, "maximum entries to list")
	journalPruneCmd.Flags().DurationVar(&journalPruneOlderThan, "older-than", 90*24*time.Hour, "delete entries older than this")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalPruneCmd)
	rootCmd.AddCommand(journalCmd)
}

func openJournalFromConfig() (*journal.Journal, error) {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	return journal.Open(cfg.Journal.Path)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournalFromConfig()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List(cmd.Context(), journalListLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "journal is empty")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  doc=%s group=%s wait=%s\n",
			e.CreatedAt.Format(time.RFC3339), e.Outcome, e.DocID, e.ProductGroup, e.Wait)
	}
	return nil
}

func runJournalPrune(cmd *cobra.Command, args []string) error {
	j, err := openJournalFromConfig()
	if err != nil {
		return err
	}
	defer j.Close()

	deleted, err := j.Prune(cmd.Context(), journalPruneOlderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d entries\n", deleted)
	return nil
}
