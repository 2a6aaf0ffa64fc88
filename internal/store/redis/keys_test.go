package redis

import "testing"

func TestKey(t *testing.T) {
	if got := Key("searchHistory"); got != "bookweb:searchHistory" {
		t.Errorf("Key() = %q", got)
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"bookweb:searchHistory", "searchHistory", false},
		{"bookweb:", "", true},
		{"other:searchHistory", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ExtractName(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractName(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractName(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
