package checker

import "testing"

func TestGenerateShortDomains(t *testing.T) {
	tests := []struct {
		name   string
		length int
		prefix string
		want   int
	}{
		{name: "single char", length: 1, prefix: "", want: 36 * len(PremiumTLDs)},
		{name: "two chars with prefix", length: 2, prefix: "a", want: 36 * len(PremiumTLDs)},
		{name: "prefix fills length", length: 2, prefix: "ab", want: len(PremiumTLDs)},
		{name: "prefix too long", length: 1, prefix: "ab", want: 0},
		{name: "length out of range", length: 4, prefix: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateShortDomains(tt.length, tt.prefix)
			if len(got) != tt.want {
				t.Fatalf("\nwanted:\n%d\ngot:\n%d", tt.want, len(got))
			}
		})
	}

	got := GenerateShortDomains(2, "ab")
	if got[0] != "ab.com" {
		t.Fatalf("\nwanted:\nab.com\ngot:\n%s", got[0])
	}
}

func TestGenerateMultiTLD(t *testing.T) {
	got := GenerateMultiTLD("quiz", []string{"io", "dev"})
	if len(got) != 2 || got[0] != "quiz.io" || got[1] != "quiz.dev" {
		t.Fatalf("\nwanted:\n[quiz.io quiz.dev]\ngot:\n%v", got)
	}
}
