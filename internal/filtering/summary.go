package filtering

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"

	"github.com/spigell/job-responder/internal/decision"
	"github.com/spigell/job-responder/internal/jobs"
)

// Record pairs a job with the engine decision taken for it.
type Record struct {
	Job      *jobs.Snapshot    `json:"job"`
	Decision decision.Decision `json:"decision"`
}

// Summary is the outcome of one pipeline run. Applied holds the jobs that survived every step,
// Rejected the engine rejections and Deferred the applicable jobs cut by the limit.
type Summary struct {
	RunID    string           `json:"run_id"`
	Applied  []Record         `json:"applied"`
	Rejected []Record         `json:"rejected"`
	Deferred []*jobs.Snapshot `json:"deferred"`
}

func newSummary() *Summary {
	return &Summary{RunID: uuid.NewString()}
}

func (s *Summary) add(records []Record) {
	for _, record := range records {
		if record.Decision.Applied() {
			s.Applied = append(s.Applied, record)
			continue
		}
		s.Rejected = append(s.Rejected, record)
	}
}

// settle keeps only the applied records whose jobs are still in the final list.
func (s *Summary) settle(left *jobs.Jobs) {
	keep := make(map[string]struct{}, left.Len())
	for _, job := range left.Items {
		keep[job.Key()] = struct{}{}
	}

	applied := s.Applied[:0]
	for _, record := range s.Applied {
		if _, ok := keep[record.Job.Key()]; ok {
			applied = append(applied, record)
		}
	}
	s.Applied = applied
}

// RejectedJobs returns the rejected jobs in evaluation order.
func (s *Summary) RejectedJobs() *jobs.Jobs {
	rejected := &jobs.Jobs{}
	for _, record := range s.Rejected {
		rejected.Items = append(rejected.Items, record.Job)
	}
	return rejected
}

// ReasonCounts counts rejections per reason.
func (s *Summary) ReasonCounts() map[decision.Reason]int {
	counts := make(map[decision.Reason]int)
	for _, record := range s.Rejected {
		counts[record.Decision.Reason]++
	}
	return counts
}

func (s *Summary) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "decisions_"+s.RunID+"_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}
