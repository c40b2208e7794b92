package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), "digraph G {\n  \"a\" -> \"b\";\n}\n")
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("RenderSVG output should contain an svg tag")
	}
}

func TestRenderSVGRejectsBadDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), "digraph {")
	if err == nil {
		t.Error("RenderSVG should fail on malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg">`)
	if got := normalizeViewBox(in); !bytes.Equal(got, in) {
		t.Errorf("input without viewBox should pass through, got %s", got)
	}
}
