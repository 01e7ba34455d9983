package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/solatis/pipecrack/internal/core/config"
	"github.com/solatis/pipecrack/internal/core/db"
	"github.com/solatis/pipecrack/internal/engine"
	"github.com/solatis/pipecrack/internal/pipeline"
	"github.com/solatis/pipecrack/internal/scoring"
	"github.com/solatis/pipecrack/internal/types"
	"github.com/spf13/cobra"
)

// sampleCiphertext is the built-in exercise input used when --ciphertext
// is not given.
const sampleCiphertext = "kCmlgFi6GUJNgkNI1Q41fbfyLoCFTCvIqkZiI0KIAXAzP1U1uy1BE4UfPBfpKmmLObjYnQNRBaPtKiVWzc5A4v0w3xle8FOhAGJZ7g4in0wndJxMOvO3dc1M82at2T6935roTqyWDgtGD/hwwRF3oHqFM5Vcw1JtINbsgWRm4o4/quEDkZ7x1B275bX3/Fo1"

var crackCmd = &cobra.Command{
	Use:   "crack",
	Short: "Enumerate a pipeline's parameter space against a ciphertext",
	RunE:  runCrack,
}

func init() {
	rootCmd.AddCommand(crackCmd)
	crackCmd.Flags().String("pipeline", "", "stage chain separated by '>' (e.g. caesar>bifid>b64>xor)")
	crackCmd.Flags().String("ciphertext", sampleCiphertext, "ciphertext to decrypt")
	crackCmd.Flags().String("dictionary", "dictionary.txt", "candidate-keys file, one key per line")
	crackCmd.Flags().Int("key_limit", 0, "truncate dictionary to first N keys (0 = unlimited)")
	crackCmd.Flags().Float64("threshold", 0.80, "minimum score to record a hit")
	crackCmd.Flags().Int("max_hits", 50, "cap on reported hits")
	crackCmd.Flags().Int("workers", 1, "worker count")
	crackCmd.Flags().Int("chunk_size", 10000, "indices per task")
	crackCmd.Flags().Int("progress_every", 50, "tasks between progress lines")
	crackCmd.Flags().String("bifid_alphabet", config.AlphabetStandard, "bifid alphabet: standard (5x5, I=J) or base64 (8x8)")
	crackCmd.Flags().String("common_words", "", "word-list file overriding the embedded one")
	crackCmd.Flags().Bool("dry_run", false, "print parameter-space sizing and exit")
	crackCmd.MarkFlagRequired("pipeline")
}

func runCrack(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCrackFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	pipelineStr, _ := cmd.Flags().GetString("pipeline")
	ciphertext, _ := cmd.Flags().GetString("ciphertext")
	dryRun, _ := cmd.Flags().GetBool("dry_run")

	stageNames, err := pipeline.Parse(pipelineStr)
	if err != nil {
		return err
	}

	keys, err := loadDictionary(cfg.Dictionary)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	keys = limitKeys(keys, cfg.KeyLimit)

	scorer := scoring.Default()
	if cfg.CommonWords != "" {
		scorer, err = scoring.FromFile(cfg.CommonWords)
		if err != nil {
			return err
		}
	}

	alphabet, err := pipeline.AlphabetByName(cfg.BifidAlphabet)
	if err != nil {
		return err
	}

	axes, err := pipeline.Axes(stageNames, len(keys))
	if err != nil {
		return err
	}
	total, err := pipeline.SpaceSize(axes)
	if err != nil {
		return err
	}

	fmt.Printf("[pipeline] %s\n", pipelineStr)
	fmt.Printf("[keys] %s\n", engine.Comma(int64(len(keys))))
	if len(axes) > 0 {
		parts := make([]string, len(axes))
		for i, a := range axes {
			parts[i] = fmt.Sprintf("%s=%s", a.Name, engine.Comma(int64(a.Size)))
		}
		fmt.Printf("[axes] %s\n", strings.Join(parts, " "))
	}
	fmt.Printf("[estimate] param_tuples=%s\n", engine.Comma(total))

	if dryRun {
		return nil
	}

	orch := &engine.Orchestrator{
		Stages:        stageNames,
		Ciphertext:    ciphertext,
		Keys:          keys,
		BifidAlphabet: alphabet,
		Scorer:        scorer,
		Threshold:     cfg.Threshold,
		Workers:       cfg.Workers,
		ChunkSize:     cfg.ChunkSize,
		ProgressEvery: cfg.ProgressEvery,
		MaxHits:       cfg.MaxHits,
		Progress:      os.Stdout,
	}
	results, err := orch.Run()
	if err != nil {
		return err
	}

	for _, h := range results.Hits {
		fmt.Printf("%.3f meta=%s\n", h.Score, h.Meta)
	}
	fmt.Printf("[done] attempts=%s hits=%d time=%.2fs\n",
		engine.Comma(results.Attempts), results.HitCount, results.Elapsed.Seconds())

	if dbURL != "" {
		recordResults(pipelineStr, len(keys), total, cfg.Threshold, results)
	}
	return nil
}

// applyCrackFlags overlays flags the user explicitly set onto the loaded
// config, preserving flag > env > file > default precedence.
func applyCrackFlags(cmd *cobra.Command, cfg *config.CrackConfig) {
	if cmd.Flags().Changed("dictionary") {
		cfg.Dictionary, _ = cmd.Flags().GetString("dictionary")
	}
	if cmd.Flags().Changed("common_words") {
		cfg.CommonWords, _ = cmd.Flags().GetString("common_words")
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("max_hits") {
		cfg.MaxHits, _ = cmd.Flags().GetInt("max_hits")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("chunk_size") {
		cfg.ChunkSize, _ = cmd.Flags().GetInt("chunk_size")
	}
	if cmd.Flags().Changed("progress_every") {
		cfg.ProgressEvery, _ = cmd.Flags().GetInt("progress_every")
	}
	if cmd.Flags().Changed("key_limit") {
		cfg.KeyLimit, _ = cmd.Flags().GetInt("key_limit")
	}
	if cmd.Flags().Changed("bifid_alphabet") {
		cfg.BifidAlphabet, _ = cmd.Flags().GetString("bifid_alphabet")
	}
}

// recordResults persists the ranked hits when a results database is
// configured. Store problems are warnings: the search output on stdout is
// already complete.
func recordResults(pipelineStr string, keyCount int, total int64, threshold float64, results *engine.Results) {
	database, err := db.Open(dbURL)
	if err != nil {
		log.Printf("[warn] results not stored: %v", err)
		return
	}
	defer database.Close()

	store, err := db.NewStore(database)
	if err != nil {
		log.Printf("[warn] results not stored: %v", err)
		return
	}

	runID := types.NewRunID()
	err = store.RecordRun(db.RunRecord{
		RunID:        string(runID),
		Pipeline:     pipelineStr,
		KeyCount:     keyCount,
		TotalTuples:  total,
		Attempts:     results.Attempts,
		HitCount:     results.HitCount,
		FailedChunks: results.FailedChunks,
		Threshold:    threshold,
		ElapsedMs:    results.Elapsed.Milliseconds(),
	}, results.Hits)
	if err != nil {
		log.Printf("[warn] results not stored: %v", err)
		return
	}
	log.Printf("run recorded as %s", runID)
}

// loadDictionary reads one key per line, trimming whitespace and skipping
// blank lines. Keys are de-duplicated preserving first occurrence so axis
// indices stay stable.
func loadDictionary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keys []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key := strings.TrimSpace(sc.Text())
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// limitKeys truncates the dictionary to the first limit keys; limit <= 0
// keeps everything.
func limitKeys(keys []string, limit int) []string {
	if limit > 0 && len(keys) > limit {
		return keys[:limit]
	}
	return keys
}
