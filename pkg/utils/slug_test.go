package utils

import "testing"

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Chat", "chat"},
		{"FindHealthcare", "findhealthcare"},
		{"Health Tips", "health-tips"},
		{"  Disease   Info  ", "disease-info"},
		{"Café Crème", "cafe-creme"},
		{"First-Aid / CPR", "first-aid-cpr"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := GenerateSlug(tc.in); got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
