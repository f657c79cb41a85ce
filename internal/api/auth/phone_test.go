package auth

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"local senegalese mobile", "77 123 45 67", "+221771234567", false},
		{"already e164", "+221771234567", "+221771234567", false},
		{"international french", "+33 6 12 34 56 78", "+33612345678", false},
		{"empty", "", "", true},
		{"garbage", "not-a-phone", "", true},
		{"too short", "12", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
