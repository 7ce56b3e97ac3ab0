// Package main scores a predictions file against gold annotations.
//
// The eval tool reads the JSONL predictions produced by the stance command,
// joins them with a gold annotation file, and prints accuracy, a per-class
// report, and the confusion matrix. It can fail the run when accuracy drops
// below a threshold, for use in CI.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/ingest"
	"github.com/lueurxax/stance-classifier/internal/output/report"
)

const (
	maxScannerBufferSize    = 1024
	scannerBufferMultiplier = 64

	errFmt = "%v\n"
)

var (
	errAccuracyBelowThreshold = errors.New("accuracy below threshold")
	errMissingGoldLabel       = errors.New("prediction has no gold annotation")
	errNoPredictions          = errors.New("no predictions found")
)

type predictionRecord struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type evalConfig struct {
	predictionsPath string
	annotationsPath string
	minAccuracy     float64
}

func main() {
	cfg := parseFlags()

	if err := runEval(cfg); err != nil {
		fmt.Fprintf(os.Stderr, errFmt, err)
		os.Exit(1)
	}
}

func parseFlags() evalConfig {
	cfg := evalConfig{}

	flag.StringVar(&cfg.predictionsPath, "predictions", "predictions.jsonl", "Path to predictions JSONL")
	flag.StringVar(&cfg.annotationsPath, "annotations", "", "Path to gold annotations JSON")
	flag.Float64Var(&cfg.minAccuracy, "min-accuracy", -1, "Fail if accuracy is below this value (disabled if <0)")

	flag.Parse()

	return cfg
}

func runEval(cfg evalConfig) error {
	annotations, err := ingest.LoadAnnotations(cfg.annotationsPath)
	if err != nil {
		return err
	}

	gold, pred, err := loadPairs(cfg.predictionsPath, annotations)
	if err != nil {
		return err
	}

	if len(gold) == 0 {
		return errNoPredictions
	}

	classes := make([]string, 0, len(domain.Stances()))
	for _, stance := range domain.Stances() {
		classes = append(classes, string(stance))
	}

	accuracy := report.Accuracy(gold, pred)
	metrics := report.ClassificationReport(gold, pred, classes)
	matrix := report.ConfusionMatrix(gold, pred, classes)

	fmt.Printf("messages: %d\n", len(gold))
	fmt.Printf("accuracy: %.4f\n\n", accuracy)
	fmt.Println(report.FormatClassificationReport(metrics, classes))
	fmt.Println(report.FormatConfusionMatrix(matrix, classes))

	if cfg.minAccuracy >= 0 && accuracy < cfg.minAccuracy {
		return fmt.Errorf("%w: %.4f < %.4f", errAccuracyBelowThreshold, accuracy, cfg.minAccuracy)
	}

	return nil
}

func loadPairs(path string, annotations domain.Annotations) (gold, pred []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open predictions: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scannerBufferMultiplier*maxScannerBufferSize), maxScannerBufferSize*maxScannerBufferSize)

	line := 0
	for scanner.Scan() {
		line++

		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var rec predictionRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, nil, fmt.Errorf("parsing prediction line %d: %w", line, err)
		}

		stance, ok := annotations[rec.ID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", errMissingGoldLabel, rec.ID)
		}

		gold = append(gold, string(stance))
		pred = append(pred, rec.Label)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading predictions: %w", err)
	}

	return gold, pred, nil
}
