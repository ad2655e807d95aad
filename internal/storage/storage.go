package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/tim/internal/logging"
	"github.com/Tiliavir/tim/internal/model"
)

// DayLog is the ordered event sequence of one calendar day.
type DayLog struct {
	Date   time.Time
	Events []model.Event
}

// BaseDir returns the default data directory (~/.tim).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tim"), nil
}

// DayFilePath returns the path for the given date's log file.
func DayFilePath(base string, t time.Time) string {
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".jsonl")
}

// LoadDay loads the events for the given date. A missing file yields an
// empty log. Any malformed line fails the whole load.
func LoadDay(base string, t time.Time) ([]model.Event, error) {
	path := DayFilePath(base, t)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return []model.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	defer f.Close()

	events := []model.Event{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		e, err := model.ParseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("corrupt event in %s line %d: %w", path, lineNo, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	logging.Debugf("loaded %d events from %s", len(events), path)
	return events, nil
}

func encodeEvents(events []model.Event) ([]byte, error) {
	var buf bytes.Buffer
	for i, e := range events {
		line, err := e.MarshalLine()
		if err != nil {
			return nil, fmt.Errorf("storage error encoding event %d: %w", i, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// SaveDay atomically rewrites the log for the given date with events, in order.
func SaveDay(base string, t time.Time, events []model.Event) error {
	path := DayFilePath(base, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := encodeEvents(events)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	logging.Debugf("saved %d events to %s", len(events), path)
	return nil
}

// AppendEvent adds one event to the end of the date's log, creating the
// file and its directories if needed.
func AppendEvent(base string, t time.Time, e model.Event) error {
	path := DayFilePath(base, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	line, err := e.MarshalLine()
	if err != nil {
		return fmt.Errorf("storage error encoding event: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("storage error opening %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("storage error appending to %s: %w", path, err)
	}
	return nil
}

// BackupDay copies the date's log to a ".bak" file beside it and returns the
// backup path. Nothing is written when the log does not exist.
func BackupDay(base string, t time.Time) (string, error) {
	path := DayFilePath(base, t)
	src, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage error opening %s: %w", path, err)
	}
	defer src.Close()

	backupPath := path + ".bak"
	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("storage error creating backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("storage error writing backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("storage error writing backup: %w", err)
	}
	logging.Debugf("backed up %s to %s", path, backupPath)
	return backupPath, nil
}

// LoadRange loads the logs of every day in [from, to], oldest first.
func LoadRange(base string, from, to time.Time) ([]DayLog, error) {
	var days []DayLog
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		events, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		days = append(days, DayLog{Date: d, Events: events})
	}
	return days, nil
}

// TouchDay makes sure the date's log exists so an editor can open it and
// returns its path.
func TouchDay(base string, t time.Time) (string, error) {
	path := DayFilePath(base, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("storage error creating directories: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("storage error opening %s: %w", path, err)
	}
	return path, f.Close()
}
