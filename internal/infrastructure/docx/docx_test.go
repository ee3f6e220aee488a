package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readPart(t *testing.T, document []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		t.Fatalf("document is not a readable archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s missing from archive", name)
	return ""
}

func TestRenderReport(t *testing.T) {
	document, err := NewRenderer().RenderReport("Event Report", "1. Overview\nA hackathon for 120 students.\n\n2. Outcome\nEveryone shipped something.")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		readPart(t, document, part)
	}

	doc := readPart(t, document, "word/document.xml")
	if !strings.Contains(doc, "Event Report") {
		t.Fatalf("title missing from document")
	}
	if !strings.Contains(doc, "1. Overview") || !strings.Contains(doc, "A hackathon for 120 students.") {
		t.Fatalf("content missing from document")
	}
	if !strings.Contains(doc, `<w:jc w:val="center"/>`) {
		t.Fatalf("title paragraph not centered")
	}
}

func TestRenderReport_EscapesMarkup(t *testing.T) {
	document, err := NewRenderer().RenderReport("Q&A <Session>", "Income & expenses < budget")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	doc := readPart(t, document, "word/document.xml")
	if !strings.Contains(doc, "Q&amp;A &lt;Session&gt;") {
		t.Fatalf("title not escaped: %s", doc)
	}
	if !strings.Contains(doc, "Income &amp; expenses &lt; budget") {
		t.Fatalf("content not escaped: %s", doc)
	}
}

func TestRenderMOU(t *testing.T) {
	document, err := NewRenderer().RenderMOU(
		"# Memorandum\n\nBoth parties **agree** to collaborate.",
		"Tech Club", "Acme Corp")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	doc := readPart(t, document, "word/document.xml")
	if !strings.Contains(doc, "MEMORANDUM OF UNDERSTANDING") {
		t.Fatalf("title missing")
	}
	if strings.Contains(doc, "**") || strings.Contains(doc, "# Memorandum") {
		t.Fatalf("markdown markers leaked into document: %s", doc)
	}
	if !strings.Contains(doc, "Both parties agree to collaborate.") {
		t.Fatalf("content missing")
	}
	if !strings.Contains(doc, "Tech Club") || !strings.Contains(doc, "Acme Corp") {
		t.Fatalf("signature blocks missing")
	}
}

func TestLooksLikeHeading(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"1. Preamble", true},
		{"10. Miscellaneous Provisions", true},
		{"Just a sentence.", false},
		{"2026 was a good year", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := looksLikeHeading(tc.line); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.line, tc.want, got)
		}
	}
}
