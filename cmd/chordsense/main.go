package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chordsense/analyzer"
	"github.com/RyanBlaney/chordsense/logging"
	"github.com/RyanBlaney/chordsense/transcode"
)

var (
	topN    int
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chordsense",
		Short: "Monophonic melody analysis and chord progression suggestion",
		Long: `chordsense analyzes a monophonic recording, detects its key and
suggests chord progressions that fit the melody.`,
		SilenceUsage: true,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [file.wav]",
		Short: "Analyze a WAV recording and print suggestions as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().IntVar(&topN, "top", 3, "number of progression suggestions to print")
	analyzeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logging.NewDefaultLogger()
	if verbose {
		log.SetLevel(logging.DebugLevel)
	} else {
		log.SetLevel(logging.WarnLevel)
	}

	audio, err := transcode.ReadWAV(args[0])
	if err != nil {
		return err
	}
	log.Debug("decoded audio", logging.Fields{
		"file":        args[0],
		"sample_rate": audio.SampleRate,
		"channels":    audio.Channels,
		"duration":    audio.Duration.String(),
	})

	cfg := analyzer.DefaultConfig()
	cfg.Logger = log

	result, err := analyzer.New(cfg).Analyze(ctx, audio.Samples, audio.SampleRate)
	if err != nil {
		return err
	}

	if topN > 0 && len(result.Suggestions) > topN {
		result.Suggestions = result.Suggestions[:topN]
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
