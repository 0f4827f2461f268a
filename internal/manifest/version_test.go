package manifest

import "testing"

func TestSatisfies(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		want       bool
		wantErr    bool
	}{
		{"^1.2.3", "1.9.9", true, false},
		{"^1.2.3", "2.0.0", false, false},
		{"^1.2.3", "1.2.2", false, false},
		{"^0.2.0", "0.2.5", true, false},
		{"^0.2.0", "0.3.0", false, false},
		{"~1.2.3", "1.2.9", true, false},
		{"~1.2.3", "1.3.0", false, false},
		{"1.0.0", "1.0.0", true, false},
		{">=1.0, <2.0", "1.5.0", true, false},
		{">=1.0, <2.0", "2.0.0", false, false},
		{"^1.0.0", "v1.5.0", true, false},
		{"not-a-constraint", "1.0.0", false, true},
		{"^1.0.0", "not-a-version", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.constraint+"/"+tt.version, func(t *testing.T) {
			got, err := Satisfies(tt.constraint, tt.version)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Satisfies: %v", err)
			}
			if got != tt.want {
				t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.constraint, tt.version, got, tt.want)
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.1", -1},
		{"1.0.0", "1.0.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"v1.2.0", "1.2.0", 0},
	}

	for _, tt := range tests {
		got, err := CompareVersions(tt.a, tt.b)
		if err != nil {
			t.Fatalf("CompareVersions(%q, %q): %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
