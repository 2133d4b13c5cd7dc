package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreCreateLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run, err := st.Create(RunMetadata{Sketch: "particles", Seed: 42, Width: 64, Height: 64, Format: "png", Preset: "dense"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = run.WriteFrame(0, func(path string) error {
		if filepath.Base(path) != "frame_00000.png" || filepath.Dir(path) != run.Dir() {
			t.Errorf("unexpected frame path %s", path)
		}
		return os.WriteFile(path, []byte("x"), 0644)
	})
	if err != nil {
		t.Fatal(err)
	}

	run.Record(FrameStats{Frame: 0, Particles: 10, Pushed: 3, KineticEnergy: 1.5, MeanDisplacement: 0.25, MaxScale: 2})
	run.Record(FrameStats{Frame: 1, Particles: 10, KineticEnergy: 0.75, MaxScale: 1})
	run.SetMetric("peak_energy", 1.5)

	meta, err := run.Close()
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if meta.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", meta.Frames)
	}

	loaded, err := st.Load(run.ID())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Sketch != "particles" || loaded.Seed != 42 || loaded.Preset != "dense" {
		t.Errorf("unexpected metadata %+v", loaded)
	}
	if loaded.Metrics["peak_energy"] != 1.5 {
		t.Errorf("expected peak_energy 1.5, got %f", loaded.Metrics["peak_energy"])
	}
	if len(loaded.Files) != 1 || loaded.Files[0] != "frame_00000.png" {
		t.Errorf("unexpected files %v", loaded.Files)
	}

	frames, err := st.LoadFrames(run.ID())
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(frames))
	}
	if frames[0].Pushed != 3 || frames[0].MeanDisplacement != 0.25 || frames[1].KineticEnergy != 0.75 {
		t.Errorf("rows did not round-trip: %+v", frames)
	}
}

func TestRunWriteFrame_FailureNotListed(t *testing.T) {
	st := New(t.TempDir())
	run, err := st.Create(RunMetadata{Sketch: "curve", Format: "svg"})
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("disk full")
	if err := run.WriteFrame(0, func(string) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if err := run.WriteFrame(1, func(path string) error { return os.WriteFile(path, nil, 0644) }); err != nil {
		t.Fatal(err)
	}

	meta, err := run.Close()
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if len(meta.Files) != 1 || meta.Files[0] != "frame_00001.svg" {
		t.Errorf("only written frames should be listed, got %v", meta.Files)
	}
}

func TestRunClose_ReportsFailure(t *testing.T) {
	st := New(t.TempDir())
	run, err := st.Create(RunMetadata{Sketch: "particles", Format: "png"})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(run.Dir()); err != nil {
		t.Fatal(err)
	}
	if _, err := run.Close(); err == nil {
		t.Error("close should fail when the run directory is gone")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("empty store: %v, %v", runs, err)
	}

	for _, sk := range []string{"curve", "particles"} {
		run, err := st.Create(RunMetadata{Sketch: sk, Format: "svg"})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := run.Close(); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(st.Dir(), "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("runs should be listed newest first")
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Load: expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadFrames("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadFrames: expected ErrRunNotFound, got %v", err)
	}
}

func TestLoadFrames_SkipsMalformed(t *testing.T) {
	st := New(t.TempDir())
	dir := filepath.Join(st.Dir(), "manual")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := "frame,particles,pushed,points,kinetic_energy,mean_displacement,max_scale\n" +
		"0,5,1,0,0.5,0.1,1.2\n" +
		"bad,row\n" +
		"x,5,1,0,0.5,0.1,1.2\n" +
		"2,5,0,0,0,0,1\n"
	if err := os.WriteFile(filepath.Join(dir, "frames.csv"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	frames, err := st.LoadFrames("manual")
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 || frames[1].Frame != 2 {
		t.Errorf("expected 2 valid rows, got %+v", frames)
	}

	ke := Series(frames, func(f FrameStats) float64 { return f.KineticEnergy })
	if len(ke) != 2 || ke[0] != 0.5 || ke[1] != 0 {
		t.Errorf("unexpected series %v", ke)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	run, err := st.Create(RunMetadata{Sketch: "curve", Format: "png"})
	if err != nil {
		t.Fatal(err)
	}
	run.Record(FrameStats{Frame: 0, Points: 5})
	if _, err := run.Close(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, run.ID()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var doc struct {
		Sketch string `json:"sketch"`
		Stats  []struct{ Points int }
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.Sketch != "curve" || len(doc.Stats) != 1 || doc.Stats[0].Points != 5 {
		t.Errorf("unexpected export %+v", doc)
	}
}
