package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

const mouSystemPrompt = `You are a legal drafting assistant for university organizations.
Write formal, legally sound agreements in clear language.`

const mouPromptTemplate = `Generate a professional Memorandum of Understanding (MOU) between:

PARTY 1 (First Party):
Name: %s
Address: %s

PARTY 2 (Second Party):
Name: %s
Address: %s

PURPOSE: %s
%s
DURATION: %s
%s

Generate a complete, professional MOU with the following sections:
1. Preamble (identifying both parties)
2. Purpose and Objectives
3. Scope of Collaboration
4. Roles and Responsibilities
   - Party 1 Obligations
   - Party 2 Obligations
5. Duration and Termination
6. Financial Terms (if applicable)
7. Intellectual Property Rights
8. Confidentiality
9. Dispute Resolution
10. Miscellaneous Provisions

Make it formal, legally sound, and comprehensive. Use proper legal language
but keep it clear and understandable.`

// MOUService drafts memoranda of understanding and rebuilds their DOCX
// rendition on download.
type MOUService struct {
	gen      ports.TextGenerator
	repo     ports.MOURepository
	renderer ports.DocumentRenderer
	log      zerolog.Logger
}

func NewMOUService(gen ports.TextGenerator, repo ports.MOURepository, renderer ports.DocumentRenderer, log zerolog.Logger) *MOUService {
	return &MOUService{gen: gen, repo: repo, renderer: renderer, log: log}
}

// Generate drafts the memorandum, stores it, and returns it together with an
// HTML rendition of the content for inline display.
func (s *MOUService) Generate(ctx context.Context, in ports.MOUInput) (*ports.MOUResult, error) {
	if s.gen == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	for _, req := range []struct{ name, value string }{
		{"party1_name", in.Party1Name},
		{"party2_name", in.Party2Name},
		{"purpose", in.Purpose},
	} {
		if strings.TrimSpace(req.value) == "" {
			return nil, &validationError{req.name + " is required"}
		}
	}
	if in.Duration == "" {
		in.Duration = "1 year"
	}

	eventLine := ""
	if in.EventName != "" {
		eventLine = "EVENT: " + in.EventName
	}
	termsLine := ""
	if in.Terms != "" {
		termsLine = "ADDITIONAL TERMS: " + in.Terms
	}
	prompt := fmt.Sprintf(mouPromptTemplate,
		in.Party1Name, in.Party1Address,
		in.Party2Name, in.Party2Address,
		in.Purpose, eventLine, in.Duration, termsLine)

	content, err := s.gen.GenerateText(ctx, mouSystemPrompt, prompt,
		ports.GenerateOptions{Temperature: 0.6, MaxTokens: 3000})
	if err != nil {
		return nil, err
	}

	mou := &domain.MOU{
		ClubID:        in.ClubID,
		Party1Name:    in.Party1Name,
		Party1Address: in.Party1Address,
		Party2Name:    in.Party2Name,
		Party2Address: in.Party2Address,
		Purpose:       in.Purpose,
		EventName:     in.EventName,
		Duration:      in.Duration,
		Terms:         in.Terms,
		Content:       content,
		Status:        domain.MOUStatusDraft,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, mou)
	if err != nil {
		return nil, err
	}
	mou.ID = id

	s.log.Info().Str("club_id", in.ClubID).Str("mou_id", id).Msg("mou generated")

	return &ports.MOUResult{
		MOU:         mou,
		ContentHTML: renderMarkdown(content),
		Filename:    mouFilename(mou),
	}, nil
}

// Get returns one stored memorandum with its full content.
func (s *MOUService) Get(ctx context.Context, clubID, id string) (*domain.MOU, error) {
	return s.repo.FindByID(ctx, clubID, id)
}

// History lists recent memoranda without their content.
func (s *MOUService) History(ctx context.Context, clubID string, limit int) ([]*domain.MOU, error) {
	if limit <= 0 {
		limit = 20
	}
	mous, err := s.repo.List(ctx, clubID, limit)
	if err != nil {
		return nil, err
	}
	for _, m := range mous {
		m.Content = ""
	}
	return mous, nil
}

// Download rebuilds the DOCX rendition of a stored memorandum.
func (s *MOUService) Download(ctx context.Context, clubID, id string) (string, []byte, error) {
	mou, err := s.repo.FindByID(ctx, clubID, id)
	if err != nil {
		return "", nil, err
	}

	document, err := s.renderer.RenderMOU(mou.Content, mou.Party1Name, mou.Party2Name)
	if err != nil {
		return "", nil, err
	}
	return mouFilename(mou), document, nil
}

func mouFilename(mou *domain.MOU) string {
	sanitize := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	}
	return fmt.Sprintf("MOU_%s_%s_%s.docx",
		sanitize(mou.Party1Name), sanitize(mou.Party2Name),
		time.Now().UTC().Format("20060102"))
}

// renderMarkdown converts generated markdown to HTML for inline display.
// A render failure falls back to the raw text; the download path does not
// depend on this rendition.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}
