package tachyon

import "testing"

func TestFullPath(t *testing.T) {
	tests := []struct {
		master, path string
		want         string
		ok           bool
	}{
		{"tachyon://h:1", "/a/b", "tachyon://h:1/a/b", true},
		{"tachyon://h:1/", "a/b", "tachyon://h:1/a/b", true},
		{"tachyon://h:1/", "/a/b", "tachyon://h:1/a/b", true},
		{"tachyon://h:1", "a/b", "tachyon://h:1/a/b", true},
		{"tachyon://h:1", "tachyon://h:1/a", "tachyon://h:1/a", true},
		{"tachyon://h:1", "", "", false},
		{"", "/a", "", false},
	}
	for _, tt := range tests {
		got, ok := FullPath(tt.master, tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FullPath(%q, %q) = %q, %v; want %q, %v", tt.master, tt.path, got, ok, tt.want, tt.ok)
		}
	}
}
