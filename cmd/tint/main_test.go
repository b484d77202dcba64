package main

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCommandTree(t *testing.T) {
	paths := [][]string{
		{"config", "list"},
		{"generate"},
		{"mode", "toggle"},
		{"mode", "set"},
		{"radius", "inc"},
		{"radius", "dec"},
		{"color", "set"},
		{"reset"},
		{"palette", "import"},
		{"palette", "export"},
		{"css"},
		{"contrast"},
		{"backup", "create"},
		{"server", "start"},
	}
	for _, p := range paths {
		cmd, _, err := rootCmd.Find(p)
		if err != nil || cmd == rootCmd {
			t.Errorf("command %v not registered", p)
		}
	}
}
