package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyTag is returned when adding a blank tag to the registry.
var ErrEmptyTag = errors.New("tag must not be empty")

// TagsFilePath returns the path of the tag registry.
func TagsFilePath(base string) string {
	return filepath.Join(base, "tags.txt")
}

// LoadTags returns the registered tags in file order, creating an empty
// registry when none exists.
func LoadTags(base string) ([]string, error) {
	path := TagsFilePath(base)
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating directories: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("storage error opening %s: %w", path, err)
	}
	defer f.Close()

	tags := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tag := strings.TrimSpace(scanner.Text())
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	return tags, nil
}

// AddTag appends tag to the registry. Duplicates are not filtered.
func AddTag(base, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	if err := os.MkdirAll(base, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	path := TagsFilePath(base)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("storage error opening %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(tag + "\n"); err != nil {
		return fmt.Errorf("storage error writing %s: %w", path, err)
	}
	return nil
}
