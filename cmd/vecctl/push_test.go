package main

import (
	"errors"
	"testing"

	"github.com/joshuapare/veckit/pkg/types"
)

func TestPushCommand(t *testing.T) {
	tests := []struct {
		name        string
		count       string
		strategy    string
		limit       int
		metrics     bool
		wantErr     error
		wantAnyErr  bool
		wantContain []string
	}{
		{
			name:     "heap growth",
			count:    "10",
			strategy: "heap",
			wantContain: []string{
				"0 -> 1 at size 0",
				"1 -> 3 at size 1",
				"7 -> 15 at size 7",
				"Size:     10",
				"Capacity: 15",
				"120 B",
			},
		},
		{
			name:        "grouped numbers",
			count:       "1000",
			strategy:    "heap",
			wantContain: []string{"Size:     1,000", "Capacity: 1,023", "8.2 kB"},
		},
		{
			name:        "mapped growth",
			count:       "100",
			strategy:    "mapped",
			wantContain: []string{"Growth (mapped):", "63 -> 127 at size 63", "Capacity: 127"},
		},
		{
			name:        "fixed within bound",
			count:       "1000",
			strategy:    "fixed",
			wantContain: []string{"(none)", "Size:     1,000", "Capacity: 1,024"},
		},
		{
			name:        "fixed over bound",
			count:       "2000",
			strategy:    "fixed",
			wantErr:     types.ErrCapacity,
			wantContain: []string{"Size:     1,024"},
		},
		{
			name:        "limit reached",
			count:       "100",
			strategy:    "heap",
			limit:       64,
			wantErr:     types.ErrMemAlloc,
			wantContain: []string{"Size:     7", "Capacity: 7"},
		},
		{
			name:        "metrics",
			count:       "4",
			strategy:    "heap",
			metrics:     true,
			wantContain: []string{"veckit_allocator_events_total", "veckit_allocator_bytes_in_use"},
		},
		{
			name:       "invalid count",
			count:      "abc",
			strategy:   "heap",
			wantAnyErr: true,
		},
		{
			name:       "unknown strategy",
			count:      "1",
			strategy:   "pool",
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			pushStrategy = tt.strategy
			pushLimit = tt.limit
			pushMetrics = tt.metrics

			output, err := captureOutput(t, func() error {
				return runPush([]string{tt.count})
			})

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runPush() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAnyErr:
				if err == nil {
					t.Fatalf("runPush() succeeded, want error\nOutput: %s", output)
				}
			case err != nil:
				t.Fatalf("runPush() error = %v\nOutput: %s", err, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestPushCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runPush([]string{"8"})
	})
	if err != nil {
		t.Fatalf("runPush() error = %v", err)
	}

	var res pushResult
	decodeJSON(t, output, &res)
	if res.Size != 8 || res.Capacity != 15 || res.Bytes != 120 {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(res.Grows) != 4 {
		t.Errorf("got %d grows, want 4: %+v", len(res.Grows), res.Grows)
	}
}

func TestDescribeError(t *testing.T) {
	plain := errors.New("plain failure")
	if got := describeError(plain); got != "plain failure" {
		t.Errorf("describeError(plain) = %q", got)
	}

	chained := types.Wrap(types.ErrKindConstruct, "outer", types.New(types.ErrKindMemAlloc, "inner"))
	got := describeError(chained)
	assertContains(t, got, []string{"0. outer", "1. inner"})
}
