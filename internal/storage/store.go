package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

const metadataFile = "metadata.json"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a finished run. The lattice itself is not part of
// the record.
type RunMetadata struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Dim           int       `json:"dim"`
	Seed          int64     `json:"seed"`
	Source        string    `json:"source"`
	CouplingConst float64   `json:"coupling_const"`
	Beta          float64   `json:"beta"`
	MagField      float64   `json:"mag_field"`
	Sweeps        int       `json:"sweeps"`
	Steps         int       `json:"steps"`
	Replicas      int       `json:"replicas,omitempty"`
	ElapsedMicros int64     `json:"elapsed_us"`
}

// Save assigns an ID and timestamp to meta and writes it under a new run
// directory. It returns the run ID.
func (s *Store) Save(meta RunMetadata) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("ising%d_%s", meta.Dim, uuid.NewString()[:8])
	meta.Timestamp = now

	runDir := s.RunDir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	if err := ExportJSON(metaFile, &meta); err != nil {
		metaFile.Close()
		return "", err
	}
	if err := metaFile.Close(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// RunDir is the directory holding a run's files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// List returns every run with a readable metadata file, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	paths, err := filepath.Glob(filepath.Join(s.baseDir, "*", metadataFile))
	if err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(paths))
	for _, p := range paths {
		meta, err := s.Load(filepath.Base(filepath.Dir(p)))
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ExportJSON writes meta as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
