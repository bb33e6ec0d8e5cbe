package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestRow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		row     Row
		wantErr bool
	}{
		{"valid", Row{ID: "1", Name: "BTC", Price: 111}, false},
		{"empty name allowed", Row{ID: "1", Price: 0}, false},
		{"negative price allowed", Row{ID: "x", Name: "n", Price: -3.5}, false},
		{"empty id", Row{Name: "BTC"}, true},
		{"blank id", Row{ID: "   "}, true},
		{"long id", Row{ID: strings.Repeat("a", MaxRowIDLength+1)}, true},
		{"nan price", Row{ID: "1", Price: math.NaN()}, true},
		{"inf price", Row{ID: "1", Price: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.row.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrRowValidation) {
				t.Errorf("Validate() error = %v, want ErrRowValidation", err)
			}
		})
	}
}

func TestState_Helpers(t *testing.T) {
	s := State{Rows: []Row{{ID: "1"}, {ID: "3"}}, Revision: 4}
	if s.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if got := strings.Join(s.IDs(), ","); got != "1,3" {
		t.Errorf("IDs() = %q, want %q", got, "1,3")
	}
	if !(State{Revision: 4}).IsEmpty() {
		t.Error("IsEmpty() = false for empty state")
	}
}
