package utils

/*

go test -run 'TestCNPJ' -v ./internal/utils -count=1

*/

import "testing"

func TestCNPJ_Sanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"11.222.333/0001-81", "11222333000181"},
		{"11222333000181", "11222333000181"},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeCNPJ(tc.in); got != tc.want {
			t.Fatalf("in=%q want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestCNPJ_Validate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11222333000181", true},
		{"11111111111111", false}, // todos iguais
		{"1122233300018", false},  // 13 dígitos
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateCNPJ(tc.in); got != tc.want {
			t.Fatalf("in=%q want=%v got=%v", tc.in, tc.want, got)
		}
	}
}
