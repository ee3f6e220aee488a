package ports

// DocumentRenderer turns generated content into a downloadable DOCX.
type DocumentRenderer interface {
	RenderReport(title, content string) ([]byte, error)
	RenderMOU(content, party1, party2 string) ([]byte, error)
}
