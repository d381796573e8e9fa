package app

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"empty args", []string{}, CommandServe},
		{"serve", []string{"serve"}, CommandServe},
		{"migrate", []string{"migrate"}, CommandMigrate},
		{"seed", []string{"seed"}, CommandSeed},
		{"healthcheck", []string{"healthcheck"}, CommandHealthcheck},
		{"unknown falls back to serve", []string{"unknown"}, CommandServe},
		{"extra args ignored", []string{"migrate", "--verbose"}, CommandMigrate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseCommand(tc.args); got != tc.want {
				t.Errorf("ParseCommand(%v) = %q, want %q", tc.args, got, tc.want)
			}
		})
	}
}
