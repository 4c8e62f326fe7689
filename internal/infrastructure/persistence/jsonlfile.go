package persistence

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// JSONLFile handles the line-oriented backing file. Each record is one
// line of UTF-8 text; writes always replace the whole file.
type JSONLFile struct {
	path   string
	atomic bool
}

// NewJSONLFile creates a handle for the backing file at path. When
// atomic is set, writes go through a temp file in the same directory
// followed by a rename, so a crash mid-write cannot leave a truncated
// file behind.
func NewJSONLFile(path string, atomic bool) *JSONLFile {
	return &JSONLFile{
		path:   path,
		atomic: atomic,
	}
}

// Path returns the backing file path.
func (f *JSONLFile) Path() string {
	return f.path
}

// Exists reports whether the backing file is present.
func (f *JSONLFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// ReadLines returns every line of the file in order. Empty lines are
// skipped.
func (f *JSONLFile) ReadLines() ([][]byte, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return lines, nil
}

// WriteLines replaces the file contents with the given lines, creating
// the parent directory if needed.
func (f *JSONLFile) WriteLines(lines [][]byte) error {
	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	if f.atomic {
		return f.writeAtomic(lines)
	}

	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.path, err)
	}
	if err := writeAll(file, lines); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	return nil
}

func (f *JSONLFile) writeAtomic(lines [][]byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".records-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeAll(tmp, lines); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}

func writeAll(file *os.File, lines [][]byte) error {
	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("write %s: %w", file.Name(), err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", file.Name(), err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", file.Name(), err)
	}
	return nil
}
