package cron

import (
	"context"
	"testing"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsOrderAndCopies(t *testing.T) {
	jobA := &stubJob{name: "outbox_retention"}
	jobB := &stubJob{name: "basket_sweep"}
	registry, err := NewRegistry(jobA, nil)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := registry.Register(jobB); err != nil {
		t.Fatalf("register: %v", err)
	}

	jobs := registry.Jobs()
	if len(jobs) != 2 || jobs[0] != jobA || jobs[1] != jobB {
		t.Fatalf("unexpected jobs %v", jobs)
	}
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

func TestRegistryRejectsDuplicateAndEmptyNames(t *testing.T) {
	if _, err := NewRegistry(&stubJob{name: "outbox_retention"}, &stubJob{name: "outbox_retention"}); err == nil {
		t.Fatal("expected duplicate name to fail")
	}
	var registry Registry
	if err := registry.Register(&stubJob{}); err == nil {
		t.Fatal("expected empty name to fail")
	}
}
