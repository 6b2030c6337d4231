package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Center Court  ",
			want:  "Center Court",
		},
		{
			name:  "multiple spaces between words",
			input: "Center    Court",
			want:  "Center Court",
		},
		{
			name:  "tabs and newlines",
			input: "Center\t\nCourt",
			want:  "Center Court",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Spa™ ",
			want:  "Café & Spa™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Player@Example.COM ", "player@example.com"},
		{"player@example.com", "player@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeCouponCode_PreservesCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" SAVE10 ", "SAVE10"},
		{"save10", "save10"},
		{"  MiXeD  ", "MiXeD"},
	}

	for _, tt := range tests {
		if got := NormalizeCouponCode(tt.input); got != tt.want {
			t.Errorf("NormalizeCouponCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
