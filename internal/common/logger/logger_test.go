package logger

import "testing"

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		value    string
		expected LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warn", WARNING},
		{"WARNING", WARNING},
		{"error", ERROR},
		{"critical", CRITICAL},
		{"", INFO},
		{"nonsense", INFO},
		{"  info  ", INFO},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			if got := ParseLevel(tc.value); got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tc.value, got, tc.expected)
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	log, err := New("", "test", "warning")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if log.ShouldLog(DEBUG) {
		t.Error("debug must be filtered at warning level")
	}
	if !log.ShouldLog(ERROR) {
		t.Error("error must pass at warning level")
	}
}
