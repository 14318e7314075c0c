package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " inputdash-api ")

	log := New().Prefix("LOG_")
	if got := log.Get("SERVICE", "x"); got != "inputdash-api" {
		t.Fatalf("Get(SERVICE) = %q, want inputdash-api", got)
	}
	if got := log.Get("MISSING", "console"); got != "console" {
		t.Fatalf("Get(MISSING) = %q, want default", got)
	}
}

func TestConfGetBool(t *testing.T) {
	log := New().Prefix("LOG_")
	for k, v := range map[string]string{"T1": "true", "T2": "1", "T3": "YES", "F1": "false", "F2": "0", "WS": "  yes  "} {
		t.Setenv("LOG_"+k, v)
	}

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"WS", false, true},
		{"MISSING", true, true},
	}
	for _, tt := range tests {
		if got := log.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	log := New().Prefix("LOG_")
	t.Setenv("LOG_SAMPLE_EVERY", " 7 ")
	t.Setenv("LOG_NONNUM", "12x")
	t.Setenv("LOG_NEG", "-5")

	tests := []struct {
		key       string
		def, want int
	}{
		{"SAMPLE_EVERY", 0, 7},
		{"NONNUM", 9, 9},
		{"NEG", 3, 3},
		{"MISSING", 11, 11},
	}
	for _, tt := range tests {
		if got := log.GetInt(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}
