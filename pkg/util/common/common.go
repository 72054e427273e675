package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Exists checks for existence of a path in the sysfs tree
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadAttribute returns the contents of a sysfs attribute file without the trailing newline
func ReadAttribute(path string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(contents)), nil
}

// ReadHexAttribute parses attributes such as svid or id_header which the kernel
// prints in hex, with or without a 0x prefix
func ReadHexAttribute(path string) (uint32, error) {
	contents, err := ReadAttribute(path)
	if err != nil {
		return 0, err
	}

	contents = strings.TrimPrefix(strings.TrimPrefix(contents, "0x"), "0X")
	v, err := strconv.ParseUint(contents, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s as hex: %v", path, err)
	}
	return uint32(v), nil
}

// ReadUintAttribute parses the leading decimal digits of an attribute, so values
// carrying a unit suffix such as 5000mV are accepted
func ReadUintAttribute(path string) (uint64, error) {
	contents, err := ReadAttribute(path)
	if err != nil {
		return 0, err
	}

	end := 0
	for end < len(contents) && contents[end] >= '0' && contents[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("error parsing %s: no number in %q", path, contents)
	}
	return strconv.ParseUint(contents[:end], 10, 64)
}

// ReadBoolAttribute parses 0/1 and yes/no style flags
func ReadBoolAttribute(path string) (bool, error) {
	contents, err := ReadAttribute(path)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(contents) {
	case "1", "y", "yes", "true":
		return true, nil
	case "0", "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("error parsing %s as a flag: %q", path, contents)
}

// IndexedEntry is a directory entry whose name starts with a numeric index,
// like 1:fixed_supply
type IndexedEntry struct {
	Index int
	Name  string
	Path  string
}

// GetIndexedEntries returns the entries of dir named <n><sep><rest>, ordered by n.
// Entries without a numeric prefix are skipped
func GetIndexedEntries(dir string, sep string) ([]IndexedEntry, error) {
	_, err := os.Lstat(dir)
	if err != nil {
		return nil, fmt.Errorf("error: could not get directory information for %s: %v", dir, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+sep+"*"))
	if err != nil {
		return nil, fmt.Errorf("error reading indexed entries %v", err)
	}

	entries := make([]IndexedEntry, 0, len(matches))
	for _, match := range matches {
		name := filepath.Base(match)
		prefix, rest, ok := strings.Cut(name, sep)
		if !ok {
			continue
		}
		index, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		entries = append(entries, IndexedEntry{Index: index, Name: rest, Path: match})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Index < entries[j].Index
	})
	return entries, nil
}
