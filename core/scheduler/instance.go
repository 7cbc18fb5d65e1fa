package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidInstance wraps every validation failure reported by Validate.
var ErrInvalidInstance = errors.New("invalid instance")

// Kind selects the algorithm an instance is checked against.
type Kind int

const (
	KindMoore Kind = iota
	KindMcNaughton
)

func (k Kind) String() string {
	switch k {
	case KindMoore:
		return "moore"
	case KindMcNaughton:
		return "mcnaughton"
	default:
		return "unknown"
	}
}

// Instance is a problem input as read from a file.
type Instance struct {
	ProcessingTimes []int `json:"processing_times" yaml:"processing_times"`
	DueDates        []int `json:"due_dates,omitempty" yaml:"due_dates,omitempty"`
	Machines        int   `json:"machines,omitempty" yaml:"machines,omitempty"`
}

// Jobs returns the jobs of the instance with 1-based IDs. Due dates default
// to zero when absent.
func (in Instance) Jobs() []Job {
	jobs := make([]Job, len(in.ProcessingTimes))
	for i, p := range in.ProcessingTimes {
		jobs[i] = Job{ID: i + 1, ProcessingTime: p}
		if i < len(in.DueDates) {
			jobs[i].DueDate = in.DueDates[i]
		}
	}
	return jobs
}

// Validate checks the preconditions the kernels rely on.
func (in Instance) Validate(kind Kind) error {
	if len(in.ProcessingTimes) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalidInstance)
	}
	for i, p := range in.ProcessingTimes {
		if p <= 0 {
			return fmt.Errorf("%w: job %d has processing time %d", ErrInvalidInstance, i+1, p)
		}
	}
	switch kind {
	case KindMoore:
		if len(in.DueDates) != len(in.ProcessingTimes) {
			return fmt.Errorf("%w: %d processing times but %d due dates",
				ErrInvalidInstance, len(in.ProcessingTimes), len(in.DueDates))
		}
	case KindMcNaughton:
		if in.Machines < 1 {
			return fmt.Errorf("%w: machines must be >= 1 (got %d)", ErrInvalidInstance, in.Machines)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidInstance, int(kind))
	}
	return nil
}

// LoadInstance reads an Instance from a JSON or YAML file.
func LoadInstance(path string) (Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return Instance{}, err
	}
	defer func() { _ = f.Close() }()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeInstance(f, ext)
}

// DecodeInstance reads from r to decode an Instance in the given format.
func DecodeInstance(r io.Reader, format string) (Instance, error) {
	var in Instance
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&in); err != nil {
			return in, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return in, err
		}
	default:
		return in, fmt.Errorf("unsupported instance format: %s", format)
	}
	return in, nil
}
