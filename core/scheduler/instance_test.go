package scheduler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeInstanceYAML(t *testing.T) {
	data := "processing_times: [2, 5, 9]\ndue_dates: [6, 8, 10]\n"
	in, err := DecodeInstance(bytes.NewBufferString(data), "yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(in.ProcessingTimes) != 3 || in.DueDates[2] != 10 {
		t.Fatalf("bad instance %#v", in)
	}
	if err := in.Validate(KindMoore); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadInstanceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inst.json")
	if err := os.WriteFile(path, []byte(`{"processing_times":[3,5],"machines":2}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	in, err := LoadInstance(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if in.Machines != 2 || in.ProcessingTimes[1] != 5 {
		t.Fatalf("bad instance %#v", in)
	}
	if err := in.Validate(KindMcNaughton); err != nil {
		t.Fatalf("validate: %v", err)
	}

	yml := filepath.Join(dir, "inst.yml")
	if err := os.WriteFile(yml, []byte("processing_times: [1]\nmachines: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadInstance(yml); err != nil {
		t.Fatalf("load yml: %v", err)
	}
}

func TestDecodeInstanceErrors(t *testing.T) {
	if _, err := DecodeInstance(bytes.NewBufferString("{}"), "toml"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := DecodeInstance(bytes.NewBufferString(":"), "yaml"); err == nil {
		t.Fatalf("expected yaml error")
	}
	if _, err := DecodeInstance(bytes.NewBufferString("{"), "json"); err == nil {
		t.Fatalf("expected json error")
	}
	path := filepath.Join(t.TempDir(), "inst.txt")
	if err := os.WriteFile(path, []byte("bad"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadInstance(path); err == nil {
		t.Fatalf("expected error for wrong ext")
	}
	if _, err := LoadInstance(path + ".missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestInstanceValidate(t *testing.T) {
	cases := []struct {
		name string
		in   Instance
		kind Kind
	}{
		{"empty", Instance{}, KindMoore},
		{"zero processing time", Instance{ProcessingTimes: []int{1, 0}, DueDates: []int{1, 1}}, KindMoore},
		{"length mismatch", Instance{ProcessingTimes: []int{1, 2}, DueDates: []int{1}}, KindMoore},
		{"no machines", Instance{ProcessingTimes: []int{1}}, KindMcNaughton},
		{"unknown kind", Instance{ProcessingTimes: []int{1}}, Kind(9)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.in.Validate(c.kind)
			if !errors.Is(err, ErrInvalidInstance) {
				t.Fatalf("expected ErrInvalidInstance got %v", err)
			}
		})
	}
}

func TestInstanceJobs(t *testing.T) {
	jobs := Instance{ProcessingTimes: []int{4, 2}, DueDates: []int{9}}.Jobs()
	if len(jobs) != 2 || jobs[0] != (Job{ID: 1, ProcessingTime: 4, DueDate: 9}) || jobs[1].DueDate != 0 {
		t.Fatalf("bad jobs %#v", jobs)
	}
	if KindMoore.String() != "moore" || KindMcNaughton.String() != "mcnaughton" || Kind(5).String() != "unknown" {
		t.Fatalf("bad kind names")
	}
}
