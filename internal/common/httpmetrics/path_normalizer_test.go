package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"", "/"},
		{"/user/userlist", "/user/userlist"},
		{"/user/550e8400-e29b-41d4-a716-446655440000", "/user/{param}"},
		{"/user/12345", "/user/{param}"},
		{"/user/createuser", "/user/createuser"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			if got := NormalizePath(tc.path); got != tc.expected {
				t.Errorf("NormalizePath(%q) = %q, expected %q", tc.path, got, tc.expected)
			}
		})
	}
}
