package services

import "testing"

func TestToE164(t *testing.T) {
	tests := []struct {
		phone   string
		want    string
		wantErr bool
	}{
		{phone: "090-1234-5678", want: "+819012345678"},
		{phone: "03-3859-7687", want: "+81338597687"},
		{phone: "12", wantErr: true},
		{phone: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ToE164(tt.phone, "JP")
		if tt.wantErr {
			if err == nil {
				t.Errorf("ToE164(%q) = %q, expected error", tt.phone, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToE164(%q) unexpected error: %v", tt.phone, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToE164(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}
