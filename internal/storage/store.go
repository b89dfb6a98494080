package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/chirpsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{
	"frame", "time", "radius", "omega",
	"primary_depth", "primary_x", "primary_y",
	"secondary_depth", "secondary_x", "secondary_y",
}

// Store keeps exported scene runs, one directory per run.
type Store struct {
	baseDir string
	log     zerolog.Logger
}

func New(baseDir string, log zerolog.Logger) *Store {
	return &Store{baseDir: baseDir, log: log.With().Str("component", "storage").Logger()}
}

// Init creates the base directory.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	M1          float64            `json:"m1"`
	M2          float64            `json:"m2"`
	Alpha       float64            `json:"alpha"`
	Beta        float64            `json:"beta"`
	Gamma       float64            `json:"gamma"`
	FrameRate   float64            `json:"frame_rate,omitempty"`
	Omega       float64            `json:"omega,omitempty"`
	Omega0      float64            `json:"omega0,omitempty"`
	TimeStep    float64            `json:"time_step,omitempty"`
	Frames      int                `json:"frames"`
	Termination string             `json:"termination,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

// FrameRow is one recorded kinematics frame.
type FrameRow struct {
	Frame     int
	Time      float64
	Radius    float64
	Omega     float64
	Primary   dynamo.Projected
	Secondary dynamo.Projected
}

// Save writes meta and rows under a fresh run directory and returns its ID.
// A zero Timestamp is filled in.
func (s *Store) Save(meta RunMetadata, rows []FrameRow) (string, error) {
	if meta.Scene == "" {
		return "", fmt.Errorf("storage: run has no scene name")
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Scene, meta.Timestamp.UnixNano())
	meta.Frames = len(rows)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create run dir: %w", err)
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), rows); err != nil {
		return "", err
	}

	s.log.Info().Str("run", meta.ID).Int("frames", len(rows)).Msg("run saved")
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("storage: write metadata: %w", err)
	}
	return nil
}

func writeFrames(path string, rows []FrameRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: create frames: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("storage: close frames: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, framesHeader)
	for _, r := range rows {
		records = append(records, formatRow(r))
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("storage: write frames: %w", err)
	}
	return nil
}

func formatRow(r FrameRow) []string {
	rec := make([]string, 1, len(framesHeader))
	rec[0] = strconv.Itoa(r.Frame)
	for _, v := range []float64{
		r.Time, r.Radius, r.Omega,
		r.Primary.Depth(), r.Primary.X(), r.Primary.Y(),
		r.Secondary.Depth(), r.Secondary.X(), r.Secondary.Y(),
	} {
		rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return rec
}

// List returns the metadata of every readable run. Directories without a
// valid metadata file are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list runs: %w", err)
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug().Err(err).Str("dir", entry.Name()).Msg("skipping run")
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadFrames reads the frames of a run back in file order.
func (s *Store) LoadFrames(runID string) ([]FrameRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []FrameRow{}, nil
	}

	rows := make([]FrameRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", runID, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (FrameRow, error) {
	frame, err := strconv.Atoi(rec[0])
	if err != nil {
		return FrameRow{}, err
	}
	vals := make([]float64, len(rec)-1)
	var errs []error
	for i, field := range rec[1:] {
		v, err := strconv.ParseFloat(field, 64)
		errs = append(errs, err)
		vals[i] = v
	}
	if err := errors.Join(errs...); err != nil {
		return FrameRow{}, err
	}
	return FrameRow{
		Frame:     frame,
		Time:      vals[0],
		Radius:    vals[1],
		Omega:     vals[2],
		Primary:   dynamo.Projected{vals[3], vals[4], vals[5]},
		Secondary: dynamo.Projected{vals[6], vals[7], vals[8]},
	}, nil
}
