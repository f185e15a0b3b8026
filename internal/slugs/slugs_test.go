package slugs

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Golden Pothos", "golden-pothos"},
		{"monstera-deliciosa", "monstera-deliciosa"},
		{"Bird's Nest Fern", "bird-s-nest-fern"},
		{"Alocasia × amazonica", "alocasia-x-amazonica"},
		{"UPPER CASE", "upper-case"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Canonical(tt.in); got != tt.want {
				t.Fatalf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"pothos-golden", true},
		{"maple-japanese", true},
		{"Pothos Golden", false},
		{"pothos_golden", false},
		{"pothos--golden", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsCanonical(tt.in); got != tt.want {
				t.Fatalf("IsCanonical(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSharesPrefix(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"rhipsalis", "rhipsalis-baccifera", true},
		{"rhipsalis-baccifera", "rhipsalis", true},
		{"philodendron", "philodendron-heartleaf", true},
		{"fern", "ferngully", false},
		{"pothos", "pothos", false},
		{"", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := SharesPrefix(tt.a, tt.b); got != tt.want {
				t.Fatalf("SharesPrefix(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
