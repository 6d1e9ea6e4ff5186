package main

import (
	"errors"
	"testing"

	"github.com/joshuapare/veckit/pkg/types"
)

func TestBitsCommand(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		pops        int
		sets        []string
		strategy    string
		wantErr     error
		wantAnyErr  bool
		wantContain []string
	}{
		{
			name:        "push only",
			pattern:     "10010",
			wantContain: []string{"10010", "Size:     5", "Capacity: 8", "Bytes:    09"},
		},
		{
			name:        "pop and assign",
			pattern:     "10010",
			pops:        2,
			sets:        []string{"2=1"},
			wantContain: []string{"101", "Size:     3", "Bytes:    05"},
		},
		{
			name:        "two bytes",
			pattern:     "111111111",
			wantContain: []string{"Capacity: 24", "Bytes:    ff 01"},
		},
		{
			name:        "fixed storage",
			pattern:     "1010",
			strategy:    "fixed",
			wantContain: []string{"Capacity: 64"},
		},
		{
			name:     "fixed over bound",
			pattern:  "10101010101010101010101010101010101010101010101010101010101010101",
			strategy: "fixed",
			wantErr:  types.ErrCapacity,
		},
		{
			name:    "assignment out of bounds",
			pattern: "101",
			sets:    []string{"5=1"},
			wantErr: types.ErrOutOfBounds,
		},
		{
			name:       "invalid pattern",
			pattern:    "10x",
			wantAnyErr: true,
		},
		{
			name:       "too many pops",
			pattern:    "10",
			pops:       3,
			wantAnyErr: true,
		},
		{
			name:       "malformed assignment",
			pattern:    "10",
			sets:       []string{"1"},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			bitsPops = tt.pops
			bitsSets = tt.sets
			if tt.strategy != "" {
				bitsStrategy = tt.strategy
			}

			output, err := captureOutput(t, func() error {
				return runBits([]string{tt.pattern})
			})

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runBits() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAnyErr:
				if err == nil {
					t.Fatalf("runBits() succeeded, want error\nOutput: %s", output)
				}
			case err != nil:
				t.Fatalf("runBits() error = %v\nOutput: %s", err, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestBitsCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	bitsSets = []string{"0=false"}

	output, err := captureOutput(t, func() error {
		return runBits([]string{"1101"})
	})
	if err != nil {
		t.Fatalf("runBits() error = %v", err)
	}

	var res bitsResult
	decodeJSON(t, output, &res)
	want := bitsResult{Bits: "0101", Size: 4, Capacity: 8, Bytes: "0a"}
	if res != want {
		t.Errorf("got %+v, want %+v", res, want)
	}
}
