package errors

import (
	"strings"
	"testing"
)

func TestValidateDiagramName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "orgchart", false},
		{"with extension", "data1.xml", false},
		{"with dashes and dots", "team-q3.v2", false},
		{"empty", "", true},
		{"path separator", "a/b", true},
		{"backslash", `a\b`, true},
		{"traversal", "..secret", true},
		{"leading dot", ".hidden", true},
		{"control character", "bad\x00name", true},
		{"too long", strings.Repeat("a", 129), true},
		{"spaces", "my diagram", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDiagramName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDiagramName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidName {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateManifestFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "nodes.toml", false},
		{"empty", "", true},
		{"path", "dir/nodes.toml", true},
		{"hidden", ".nodes.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifestFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateManifestFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
