package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"crptlabs/crptgate/pkg/config"
	"crptlabs/crptgate/pkg/crpt"
	"crptlabs/crptgate/pkg/gate"
	"crptlabs/crptgate/pkg/journal"
	"crptlabs/crptgate/pkg/ratelimit"
	"crptlabs/crptgate/pkg/telemetry/logging"
)

var (
	submitDocument  string
	submitSignature string
	submitGroup     string
	submitCount     int
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a document through the rate gate",
	Long: `Submit reads a goods-into-circulation document from a JSON file and posts
it to the CRPT API. Submissions pass through the configured rate gate: when
the current window's quota is exhausted, submit waits for the next
replenishment before sending.

With --count > 1 the same document is submitted repeatedly, which is mainly
useful for exercising the gate against a staging endpoint.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitDocument, "document", "d", "", "path to the document JSON file (required)")
	submitCmd.Flags().StringVarP(&submitSignature, "signature", "s", "", "path to the detached base64 signature file (required)")
	submitCmd.Flags().StringVarP(&submitGroup, "group", "g", "", "product group, e.g. milk or shoes (required)")
	submitCmd.Flags().IntVarP(&submitCount, "count", "n", 1, "number of times to submit the document")

	submitCmd.MarkFlagRequired("document")
	submitCmd.MarkFlagRequired("signature")
	submitCmd.MarkFlagRequired("group")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	doc, err := readDocument(submitDocument)
	if err != nil {
		return err
	}
	signature, err := readSignature(submitSignature)
	if err != nil {
		return err
	}
	if submitCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", submitCount)
	}

	limiter, err := ratelimit.New(cfg.RateLimit.Interval, cfg.RateLimit.RequestLimit,
		ratelimit.WithLogger(logger))
	if err != nil {
		return err
	}
	defer limiter.Shutdown()

	g, err := gate.New(limiter, gate.WithLogger(logger))
	if err != nil {
		return err
	}

	client, err := crpt.NewClient(crpt.Config{
		BaseURL: cfg.CRPT.BaseURL,
		Token:   cfg.CRPT.Token,
		Timeout: cfg.CRPT.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	gated := crpt.NewGatedClient(client, g)

	var j *journal.Journal
	if cfg.Journal.Enabled {
		j, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i := 0; i < submitCount; i++ {
		start := time.Now()
		result, err := gated.CreateDocument(ctx, doc, signature, submitGroup)
		waited := time.Since(start)

		if j != nil {
			entry := journal.Entry{
				DocID:        doc.DocID,
				ProductGroup: submitGroup,
				Outcome:      classifyOutcome(err),
				Wait:         waited,
			}
			if err != nil {
				entry.Detail = err.Error()
			} else {
				entry.Detail = result.Body
			}
			if recErr := j.Record(ctx, entry); recErr != nil {
				logger.Warn("failed to journal submission", "error", recErr)
			}
		}

		if err != nil {
			if errors.Is(err, ratelimit.ErrAcquireCancelled) {
				logger.Info("submission cancelled while waiting for admission")
				return err
			}
			logger.Error("submission failed", "doc_id", doc.DocID, "error", err)
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "document created: %s\n", result.Body)
	}

	return nil
}

// classifyOutcome maps a submission error to a journal outcome.
func classifyOutcome(err error) journal.Outcome {
	switch {
	case err == nil:
		return journal.OutcomeOK
	case errors.Is(err, ratelimit.ErrAcquireCancelled):
		return journal.OutcomeCancelled
	default:
		return journal.OutcomeError
	}
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	})
}

func readDocument(path string) (*crpt.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file %q: %w", path, err)
	}
	var doc crpt.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document file %q: %w", path, err)
	}
	return &doc, nil
}

func readSignature(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read signature file %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
