package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "both populated",
			existing: Label{Value: "cf", Source: "recall"},
			incoming: Label{Value: "hot", Source: "recall"},
			want:     Label{Value: "cf|hot", Source: "recall,recall"},
		},
		{
			name:     "empty existing",
			existing: Label{},
			incoming: Label{Value: "hot", Source: "recall"},
			want:     Label{Value: "hot", Source: "recall"},
		},
		{
			name:     "empty incoming",
			existing: Label{Value: "cf", Source: "recall"},
			incoming: Label{},
			want:     Label{Value: "cf", Source: "recall"},
		},
		{
			name:     "missing incoming source",
			existing: Label{Value: "cf", Source: "recall"},
			incoming: Label{Value: "hot"},
			want:     Label{Value: "cf|hot", Source: "recall"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
