package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/lingocli/lingo/internal/workspace"
)

// ProjectFile is the mapping file name inside the marker directory.
const ProjectFile = "config.yaml"

// ProjectPath returns the mapping file location for a workspace root.
func ProjectPath(root string) string {
	return filepath.Join(root, workspace.MarkerDir, ProjectFile)
}

// LoadProject reads and strictly decodes the mapping file under root.
// Unknown keys are errors, so typos surface instead of silently
// dropping a resource. An empty file loads as an empty Project.
func LoadProject(root string) (*Project, error) {
	path := ProjectPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return &Project{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, nil
}

// SaveProject writes the mapping file under root. The marker directory
// must already exist.
func SaveProject(root string, p *Project) error {
	return writeLocked(ProjectPath(root), p, 0o644)
}

// writeLocked marshals v and replaces path under an advisory file
// lock, so two commands editing the same file serialize instead of
// interleaving. The mode is enforced with an explicit chmod because
// WriteFile only applies it on create.
func writeLocked(path string, v interface{}, mode os.FileMode) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
