package pipeline

import (
	"testing"

	apperrors "github.com/matzehuels/refgraph/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"DOT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"dot", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"dot", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateOp(t *testing.T) {
	tests := []struct {
		op      string
		wantErr bool
	}{
		{"descendants", false},
		{"ancestors", false},
		{"components", false},
		{"stats", false},
		{"invalid", true},
		{"Stats", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateOp(tt.op)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOp(%q) error = %v, wantErr %v", tt.op, err, tt.wantErr)
		}
	}
}

func TestValidationErrorCodes(t *testing.T) {
	if err := ValidateFormat("pdf"); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat code = %v, want INVALID_FORMAT", apperrors.GetCode(err))
	}
	if err := ValidateOp("nope"); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("ValidateOp code = %v, want INVALID_INPUT", apperrors.GetCode(err))
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing source
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing manifest/snapshot should fail")
	}

	// Both sources
	opts = Options{Manifest: "a.toml", Snapshot: "b.json"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Manifest and snapshot together should fail")
	}

	// Valid with manifest
	opts = Options{Manifest: "a.toml"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid manifest options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default was not set")
	}

	// Valid with snapshot
	opts = Options{Snapshot: "b.json"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid snapshot options should pass: %v", err)
	}
}

func TestOptionsValidateForAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		vertex  string
		wantErr bool
	}{
		{"descendants with vertex", "descendants", "auth", false},
		{"ancestors with vertex", "ancestors", "auth", false},
		{"descendants without vertex", "descendants", "", true},
		{"components", "components", "", false},
		{"components with vertex", "components", "auth", true},
		{"stats", "stats", "", false},
		{"stats with vertex", "stats", "auth", true},
		{"invalid op", "invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Op: tt.op, Vertex: tt.vertex}
			err := opts.ValidateForAnalyze()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForAnalyze() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsIsReachOp(t *testing.T) {
	opts := Options{Op: OpDescendants}
	if !opts.IsReachOp() {
		t.Error("descendants should be a reach op")
	}

	opts.Op = OpAncestors
	if !opts.IsReachOp() {
		t.Error("ancestors should be a reach op")
	}

	opts.Op = OpStats
	if opts.IsReachOp() {
		t.Error("stats should not be a reach op")
	}

	opts.Op = ""
	if opts.IsReachOp() {
		t.Error("empty op should not be a reach op")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDOT {
		t.Errorf("Formats should be [dot], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger default was not set")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Manifest: "services.toml",
		Op:       OpStats,
	}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := opts.Formats

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != len(originalFormats) || opts.Formats[0] != originalFormats[0] {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsValidateAndSetDefaultsRejectsBadOp(t *testing.T) {
	opts := Options{Manifest: "services.toml", Op: "explode"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Invalid op should fail full validation")
	}
}

func TestOptionsKeyOpts(t *testing.T) {
	opts := Options{Op: OpDescendants, Vertex: "auth", Labelled: true}

	ak := opts.AnalysisKeyOpts()
	if ak.Op != OpDescendants || ak.Vertex != "auth" {
		t.Errorf("AnalysisKeyOpts() = %+v", ak)
	}

	rk := opts.ArtifactKeyOpts("svg")
	if rk.Format != "svg" || !rk.Labelled {
		t.Errorf("ArtifactKeyOpts() = %+v", rk)
	}
}
