package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type PlannerConfig struct {
	ID         int
	Algorithm  string
	Map        string
	Slippery   bool
	Gamma      float64
	Tolerance  float64
	Goroutines int
	Episodes   int
}

type RunRecord struct {
	Config int // PlannerConfig.ID
	RunMetric
	TotalReward float64
	Episodes    int
}

type SweepRecord struct {
	Run   int // RunRecord.Config
	Sweep int
	Delta float64
}

type EpisodeRecord struct {
	Run int // RunRecord.Config
	EpisodeMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the records of one experiment.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WritePlannerConfigs(configs []PlannerConfig) error {
	header := []string{"id", "algorithm", "map", "slippery", "gamma", "tolerance", "goroutines", "episodes"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Algorithm,
			config.Map,
			strconv.FormatBool(config.Slippery),
			formatFloat(config.Gamma),
			formatFloat(config.Tolerance),
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.Episodes),
		})
	}
	return w.write("planner_configs.csv", header, rows)
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	header := []string{"config", "algorithm", "goroutines", "gamma", "tolerance", "duration", "sweeps", "evaluations", "improvements", "final_delta", "episodes", "total_reward"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Config),
			record.Algorithm,
			strconv.Itoa(record.Goroutines),
			formatFloat(record.Gamma),
			formatFloat(record.Tolerance),
			record.Duration.String(),
			strconv.Itoa(record.Sweeps),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Improvements),
			formatFloat(record.FinalDelta),
			strconv.Itoa(record.Episodes),
			formatFloat(record.TotalReward),
		})
	}
	return w.write("run_records.csv", header, rows)
}

func (w *Writer) WriteSweepRecords(records []SweepRecord) error {
	header := []string{"run", "sweep", "delta"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Run),
			strconv.Itoa(record.Sweep),
			formatFloat(record.Delta),
		})
	}
	return w.write("sweep_records.csv", header, rows)
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	header := []string{"run", "episode", "steps", "reward", "truncated", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Run),
			strconv.Itoa(record.Episode),
			strconv.Itoa(record.Steps),
			formatFloat(record.Reward),
			strconv.FormatBool(record.Truncated),
			record.Duration.String(),
		})
	}
	return w.write("episode_records.csv", header, rows)
}

// SweepRecords flattens the per-sweep deltas of a run.
func SweepRecords(run int, metric RunMetric) []SweepRecord {
	records := make([]SweepRecord, len(metric.Deltas))
	for i, delta := range metric.Deltas {
		records[i] = SweepRecord{Run: run, Sweep: i + 1, Delta: delta}
	}
	return records
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
