// Package docx writes minimal WordprocessingML documents. It produces the
// three-part OOXML package ([Content_Types].xml, _rels/.rels,
// word/document.xml) that Word and LibreOffice open without complaint, which
// is all the report and MOU downloads need.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `</w:body></w:document>`

// Renderer implements ports.DocumentRenderer.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderReport produces a document with a centered title followed by the
// content, one paragraph per line. Lines that look like numbered section
// headings are emphasised.
func (r *Renderer) RenderReport(title, content string) ([]byte, error) {
	var body strings.Builder
	body.WriteString(headingParagraph(title, 32, true))
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			body.WriteString(paragraph("", false))
		case looksLikeHeading(line):
			body.WriteString(headingParagraph(line, 26, false))
		default:
			body.WriteString(paragraph(line, false))
		}
	}
	return pack(body.String())
}

// RenderMOU produces the memorandum document: a centered title, the drafted
// content, and signature blocks for both parties.
func (r *Renderer) RenderMOU(content, party1, party2 string) ([]byte, error) {
	var body strings.Builder
	body.WriteString(headingParagraph("MEMORANDUM OF UNDERSTANDING", 32, true))
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(strings.ReplaceAll(line, "**", ""), " \t")
		line = strings.TrimPrefix(line, "# ")
		line = strings.TrimPrefix(line, "## ")
		if line == "" {
			body.WriteString(paragraph("", false))
			continue
		}
		body.WriteString(paragraph(line, false))
	}

	body.WriteString(paragraph("", false))
	body.WriteString(paragraph("", false))
	for _, party := range []string{party1, party2} {
		body.WriteString(paragraph("_________________________", false))
		body.WriteString(paragraph(party, true))
		body.WriteString(paragraph("Date: _______________", false))
		body.WriteString(paragraph("", false))
	}
	return pack(body.String())
}

// pack assembles the OOXML zip container around the document body.
func pack(body string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentHeader + body + documentFooter},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("docx: create %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("docx: write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func paragraph(text string, bold bool) string {
	if text == "" {
		return "<w:p/>"
	}
	props := ""
	if bold {
		props = "<w:rPr><w:b/></w:rPr>"
	}
	return fmt.Sprintf(`<w:p><w:r>%s<w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		props, escape(text))
}

func headingParagraph(text string, halfPoints int, center bool) string {
	align := ""
	if center {
		align = `<w:jc w:val="center"/>`
	}
	return fmt.Sprintf(
		`<w:p><w:pPr>%s</w:pPr><w:r><w:rPr><w:b/><w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		align, halfPoints, escape(text))
}

// looksLikeHeading reports whether a line starts a numbered section
// ("1. Preamble", "10. Miscellaneous Provisions").
func looksLikeHeading(line string) bool {
	line = strings.TrimSpace(line)
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		return i > 0 && r == '.'
	}
	return false
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
