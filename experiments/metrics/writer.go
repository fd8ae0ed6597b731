package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MatchRecord struct {
	ID   int
	Seed uint64
	MatchMetric
}

type PlayerRecord struct {
	Match    int // MatchRecord.ID
	PlayerID int // 1 or 2
	Color    string
	PlayerMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a directory for an experiment's records under root, named
// by the experiment and the current time.
func NewWriter(root, name string) (*Writer, error) {
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

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	header := []string{"id", "seed", "winner", "turns", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Winner,
			strconv.Itoa(record.Turns),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("match_records.csv", header, rows)
}

func (w *Writer) WritePlayerRecords(records []PlayerRecord) error {
	header := []string{"match", "player", "color", "turns", "opens", "kills", "advances", "no_moves", "captures", "losses", "think_time"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Match),
			strconv.Itoa(record.PlayerID),
			record.Color,
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Opens),
			strconv.Itoa(record.Kills),
			strconv.Itoa(record.Advances),
			strconv.Itoa(record.NoMoves),
			strconv.Itoa(record.Captures),
			strconv.Itoa(record.Losses),
			record.ThinkTime.String(),
		})
	}
	return w.write("player_records.csv", header, rows)
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
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
