package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Sketch    string             `json:"sketch"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Preset    string             `json:"preset,omitempty"`
	Image     string             `json:"image,omitempty"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Format    string             `json:"format"`
	Frames    int                `json:"frames"`
	Files     []string           `json:"files"`
	Metrics   map[string]float64 `json:"metrics"`
}

// FrameStats is one row of frames.csv.
type FrameStats struct {
	Frame            int
	Particles        int
	Pushed           int
	Points           int
	KineticEnergy    float64
	MeanDisplacement float64
	MaxScale         float64
}

var csvHeader = []string{"frame", "particles", "pushed", "points", "kinetic_energy", "mean_displacement", "max_scale"}

func (f FrameStats) record() []string {
	return []string{
		strconv.Itoa(f.Frame),
		strconv.Itoa(f.Particles),
		strconv.Itoa(f.Pushed),
		strconv.Itoa(f.Points),
		strconv.FormatFloat(f.KineticEnergy, 'f', 6, 64),
		strconv.FormatFloat(f.MeanDisplacement, 'f', 6, 64),
		strconv.FormatFloat(f.MaxScale, 'f', 6, 64),
	}
}

// Run is an open run directory. Frames are written into it as they are
// rendered; Close writes metadata.json and frames.csv.
type Run struct {
	dir   string
	meta  RunMetadata
	stats []FrameStats
}

func (s *Store) Create(meta RunMetadata) (*Run, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%s", meta.Sketch, now.Format("20060102-150405.000000"))
	meta.Timestamp = now
	if meta.Metrics == nil {
		meta.Metrics = make(map[string]float64)
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Run{dir: dir, meta: meta}, nil
}

func (r *Run) ID() string  { return r.meta.ID }
func (r *Run) Dir() string { return r.dir }

// WriteFrame hands write the path for frame i. The file is listed in the
// run metadata only when write succeeds.
func (r *Run) WriteFrame(i int, write func(path string) error) error {
	name := fmt.Sprintf("frame_%05d.%s", i, r.meta.Format)
	if err := write(filepath.Join(r.dir, name)); err != nil {
		return err
	}
	r.meta.Files = append(r.meta.Files, name)
	return nil
}

func (r *Run) Record(st FrameStats) { r.stats = append(r.stats, st) }

func (r *Run) SetMetric(name string, v float64) { r.meta.Metrics[name] = v }

func (r *Run) Close() (*RunMetadata, error) {
	r.meta.Frames = len(r.stats)

	err := createFile(filepath.Join(r.dir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.meta)
	})
	if err != nil {
		return nil, err
	}

	err = createFile(filepath.Join(r.dir, "frames.csv"), func(f io.Writer) error {
		w := csv.NewWriter(f)
		if err := w.Write(csvHeader); err != nil {
			return err
		}
		for _, st := range r.stats {
			if err := w.Write(st.record()); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		return nil, err
	}

	meta := r.meta
	return &meta, nil
}

// createFile runs fn on a new file at path and reports the close error when
// fn itself succeeded.
func createFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []FrameStats{}, nil
	}

	out := make([]FrameStats, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(csvHeader) {
			continue
		}
		st, err := parseRecord(rec)
		if err != nil {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

func parseRecord(rec []string) (FrameStats, error) {
	var st FrameStats
	ints := []*int{&st.Frame, &st.Particles, &st.Pushed, &st.Points}
	for i, dst := range ints {
		v, err := strconv.Atoi(rec[i])
		if err != nil {
			return st, err
		}
		*dst = v
	}
	floats := []*float64{&st.KineticEnergy, &st.MeanDisplacement, &st.MaxScale}
	for i, dst := range floats {
		v, err := strconv.ParseFloat(rec[len(ints)+i], 64)
		if err != nil {
			return st, err
		}
		*dst = v
	}
	return st, nil
}

// Series extracts one column from frames for plotting.
func Series(frames []FrameStats, pick func(FrameStats) float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = pick(f)
	}
	return out
}

// ExportJSON writes a run's metadata and per-frame stats as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*RunMetadata
		Stats []FrameStats `json:"stats"`
	}{meta, frames})
}
