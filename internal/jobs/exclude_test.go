package jobs

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExcludedJobsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	missing, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error for missing file: %v", err)
	}
	if len(missing.Items) != 0 {
		t.Fatalf("expected empty list for missing file")
	}

	jobs := &Jobs{Items: []*Snapshot{{ID: "1", Company: "Acme"}, {URL: "https://example.com/2"}}}
	if err := jobs.ToExcluded("applied").AppendToFile(path); err != nil {
		t.Fatalf("append: %v", err)
	}

	more := &Jobs{Items: []*Snapshot{{ID: "3"}}}
	if err := more.ToExcluded("applied").AppendToFile(path); err != nil {
		t.Fatalf("append: %v", err)
	}

	loaded, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "https://example.com/2", "3"}, loaded.IDs()); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	if loaded.Items[0].Reason != "applied" || loaded.Items[0].Company != "Acme" {
		t.Fatalf("unexpected entry: %+v", loaded.Items[0])
	}
}

func TestExcludedJobsConcurrentAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	const writers = 40
	want := make([]string, 0, writers)
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		id := strconv.Itoa(i)
		want = append(want, id)

		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := &ExcludedJobs{Items: []*ExcludedJob{{ID: id, Reason: "applied"}}}
			if err := entry.AppendToFile(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("append: %v", err)
	}

	loaded, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	got := loaded.IDs()
	sort.Strings(got)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("appends were lost (-want +got):\n%s", diff)
	}
}

func TestExcludedJobsFileShrinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	long := &Jobs{Items: []*Snapshot{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	if err := long.ToExcluded("applied").ToFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	short := &Jobs{Items: []*Snapshot{{ID: "9"}}}
	if err := short.ToExcluded("applied").ToFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff([]string{"9"}, loaded.IDs()); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
}

func TestExcludedJobsEmptyAndBrokenFile(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := GetExcludedJobsFromFile(empty)
	if err != nil || len(got.Items) != 0 {
		t.Fatalf("expected empty list, got %+v, %v", got, err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := GetExcludedJobsFromFile(broken); err == nil {
		t.Fatalf("expected decode error")
	}
}
