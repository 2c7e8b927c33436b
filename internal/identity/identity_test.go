package identity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "typical address",
			email: "ana.b@x.com",
			want:  "ana_b_x_com",
		},
		{
			name:  "plus addressing",
			email: "dev+test@example.co.uk",
			want:  "dev_test_example_co_uk",
		},
		{
			name:  "already normalized",
			email: "ana_b_x_com",
			want:  "ana_b_x_com",
		},
		{
			name:  "hyphen and underscore preserved",
			email: "first-last_99@mail.org",
			want:  "first-last_99_mail_org",
		},
		{
			name:  "empty string",
			email: "",
			want:  "",
		},
		{
			name:  "unicode runes",
			email: "анна@пример.рф",
			want:  "______________",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.email)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"ana.b@x.com", "", "!!!", "Mixed.Case+Tag@Example.COM"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	out := Normalize("weird !@#$%^&*() input\twith spaces")
	for _, r := range out {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
		if !ok {
			t.Fatalf("output contains rune %q outside [A-Za-z0-9_-]: %q", r, out)
		}
	}
}
