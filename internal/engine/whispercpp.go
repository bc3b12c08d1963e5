package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/deck-scribe/internal/config"
	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
	"github.com/nguyentantai21042004/deck-scribe/pkg/executor"
)

type whisperCpp struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperCpp runs the whisper.cpp CLI (whisper-cli / main) locally
func NewWhisperCpp(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Engine {
	return &whisperCpp{cfg: cfg, executor: exec, logger: log}
}

func (w *whisperCpp) Name() string {
	return config.EngineWhisperCpp
}

type whisperCppOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp with JSON output next to the audio file
func (w *whisperCpp) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	// whisper.cpp appends .json to the output prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	jsonPath := outputPrefix + ".json"

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, audioPath)

	// -m: model path
	// -f: input audio file
	// -l: language, "auto" lets whisper detect it
	// -t: threads
	// -bo: best of N candidates
	// -oj/-of: write JSON to <prefix>.json
	// -np: no progress/console prints
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-oj",
		"-of", outputPrefix,
		"-np",
	}
	if w.cfg.BestOf > 0 {
		args = append(args, "-bo", strconv.Itoa(w.cfg.BestOf))
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	result, err := parseWhisperCppJSON(data)
	if err != nil {
		return nil, err
	}

	w.logger.Info(ctx, "Transcription completed: %d segments", len(result.Segments))
	return result, nil
}

func parseWhisperCppJSON(data []byte) (*Result, error) {
	var out whisperCppOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	result := &Result{
		Language: out.Result.Language,
		Engine:   config.EngineWhisperCpp,
	}
	for _, t := range out.Transcription {
		result.Segments = append(result.Segments, Segment{
			Start: millis(t.Offsets.From),
			End:   millis(t.Offsets.To),
			Text:  t.Text,
		})
	}
	result.Normalize()
	return result, nil
}
