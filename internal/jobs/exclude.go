package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gofrs/flock"
)

const lockSuffix = ".lock"

// GetExcludedJobsFromFile reads the exclude file under a shared lock.
// A missing or empty file yields an empty list.
func GetExcludedJobsFromFile(path string) (*ExcludedJobs, error) {
	lock := flock.New(path + lockSuffix)
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock exclude file: %w", err)
	}
	defer lock.Unlock()

	return readExcluded(path)
}

// ToFile rewrites the exclude file under an exclusive lock.
func (v *ExcludedJobs) ToFile(path string) error {
	lock := flock.New(path + lockSuffix)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock exclude file: %w", err)
	}
	defer lock.Unlock()

	return v.write(path)
}

// AppendToFile merges the entries into the exclude file. The read and the rewrite happen
// under one exclusive lock so concurrent appends never drop each other's entries.
func (v *ExcludedJobs) AppendToFile(path string) error {
	lock := flock.New(path + lockSuffix)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock exclude file: %w", err)
	}
	defer lock.Unlock()

	existing, err := readExcluded(path)
	if err != nil {
		return err
	}
	existing.Append(v)
	return existing.write(path)
}

func readExcluded(path string) (*ExcludedJobs, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedJobs{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode exclude file %q: %w", path, err)
	}
	return &excluded, nil
}

func (v *ExcludedJobs) write(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
