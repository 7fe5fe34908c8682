// Command concepteval evaluates free-text concept explanations from the
// command line and prints the analysis as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/explainwell/concept-evaluator/internal/adapter/observability"
	"github.com/explainwell/concept-evaluator/internal/adapter/reference/wikipedia"
	"github.com/explainwell/concept-evaluator/internal/adapter/similarity"
	"github.com/explainwell/concept-evaluator/internal/adapter/similarity/embed"
	"github.com/explainwell/concept-evaluator/internal/adapter/similarity/lexical"
	"github.com/explainwell/concept-evaluator/internal/config"
	"github.com/explainwell/concept-evaluator/internal/domain"
	"github.com/explainwell/concept-evaluator/internal/knowledge"
	"github.com/explainwell/concept-evaluator/internal/scoring"
	"github.com/explainwell/concept-evaluator/internal/usecase"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "concepteval",
		Short:         "Score free-text concept explanations against reference knowledge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(analyzeCmd(), overviewCmd())
	return root
}

func analyzeCmd() *cobra.Command {
	var (
		text    string
		concept string
		subject string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one explanation and print scores and feedback",
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, err := buildAnalyzer()
			if err != nil {
				return err
			}
			res, err := analyzer.Analyze(cmd.Context(), usecase.AnalyzeRequest{
				Text:      text,
				ConceptID: concept,
				Subject:   subject,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, toAnalysisDTO(res))
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "explanation text to evaluate")
	cmd.Flags().StringVar(&concept, "concept", "", "concept identifier or topic")
	cmd.Flags().StringVar(&subject, "subject", "", "optional subject area for context")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("concept")
	return cmd
}

func overviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview <topic>",
		Short: "Print a quick topic overview (documentary mode only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := buildAnalyzer()
			if err != nil {
				return err
			}
			ov, err := analyzer.Overview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, toOverviewDTO(ov))
		},
	}
	return cmd
}

// buildAnalyzer wires config, observability, and the knowledge and
// similarity services for the configured mode.
func buildAnalyzer() (usecase.Analyzer, error) {
	cfg, err := config.Load()
	if err != nil {
		return usecase.Analyzer{}, err
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	var sim domain.SimilarityService = lexical.New()
	if cfg.EmbeddingsEnabled() {
		sim = similarity.NewFallback(embed.New(cfg), lexical.New())
	}
	engine := scoring.NewEngine(sim)

	switch cfg.KnowledgeMode {
	case config.ModeDocumentary:
		provider := knowledge.NewDocumentaryProvider(wikipedia.New(cfg))
		return usecase.NewAnalyzer(provider, engine, provider), nil
	default:
		catalog, err := knowledge.LoadCatalog()
		if err != nil {
			return usecase.Analyzer{}, err
		}
		return usecase.NewAnalyzer(knowledge.NewStaticProvider(catalog), engine, nil), nil
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("serving metrics", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server failed", slog.Any("error", err))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
