package server

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// JobState is the lifecycle of one uploaded file
type JobState string

const (
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// Job tracks the processing of one uploaded IFC file
type Job struct {
	ID         string    `json:"id"`
	SourceName string    `json:"source_name"`
	State      JobState  `json:"state"`
	ResultFile string    `json:"result_filename,omitempty"`
	Error      string    `json:"error,omitempty"`
	Started    time.Time `json:"started"`
}

// JobStore is an in-memory registry of processing jobs with a text log
// per job. Jobs live for the lifetime of the server; result files on
// disk outlive it.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	logs map[string]*strings.Builder
}

func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		logs: make(map[string]*strings.Builder),
	}
}

// Create registers a new running job
func (s *JobStore) Create(id, sourceName string) Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	job := &Job{
		ID:         id,
		SourceName: sourceName,
		State:      JobRunning,
		Started:    time.Now(),
	}
	s.jobs[id] = job
	s.logs[id] = &strings.Builder{}
	return *job
}

// Get returns a point-in-time snapshot of a job plus its log text
func (s *JobStore) Get(id string) (Job, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, "", false
	}
	return *job, s.logs[id].String(), true
}

// Logf appends a line to the job's processing log
func (s *JobStore) Logf(id, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log, ok := s.logs[id]; ok {
		fmt.Fprintf(log, format+"\n", args...)
	}
}

// Finish marks a job done and records its result file
func (s *JobStore) Finish(id, resultFile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.State = JobDone
		job.ResultFile = resultFile
	}
}

// Fail marks a job failed
func (s *JobStore) Fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.State = JobFailed
		job.Error = err.Error()
	}
}
