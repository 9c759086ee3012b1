package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/resumediff/resumediff/pkg/domain/interfaces"
	"github.com/resumediff/resumediff/pkg/domain/model"
	"github.com/resumediff/resumediff/pkg/domain/types"
)

//go:embed prompts/compare_system.md
var systemPrompt string

//go:embed prompts/compare_user.md
var userPromptTemplate string

// maxPromptTextLen caps how much of each document is sent to the model
const maxPromptTextLen = 15000

type compareUseCase struct {
	llmClient    gollem.LLMClient
	userTemplate *template.Template
	timeout      time.Duration
}

// CompareOption is a functional option for the compare use case
type CompareOption func(*compareUseCase)

// WithTimeout bounds a single LLM call. Zero means no deadline.
func WithTimeout(d time.Duration) CompareOption {
	return func(uc *compareUseCase) {
		uc.timeout = d
	}
}

// NewCompare creates a new CompareUseCase instance
func NewCompare(llmClient gollem.LLMClient, opts ...CompareOption) (interfaces.CompareUseCase, error) {
	tmpl, err := template.New("user").Parse(userPromptTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse user prompt template")
	}

	uc := &compareUseCase{
		llmClient:    llmClient,
		userTemplate: tmpl,
	}
	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

// Compare evaluates how well a resume matches a job description via the LLM
func (uc *compareUseCase) Compare(ctx context.Context, input *model.CompareInput) (*model.CompareResult, error) {
	logger := ctxlog.From(ctx).With("comparison_id", uuid.NewString())
	ctx = ctxlog.With(ctx, logger)

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	warnings := append([]string(nil), input.Warnings...)

	jdText, jdTruncated := truncateForPrompt(input.JDText)
	resumeText, resumeTruncated := truncateForPrompt(input.ResumeText)

	var notes []string
	if jdTruncated {
		notes = append(notes, "JD text was truncated.")
		warnings = append(warnings, "JD text was truncated for analysis")
	}
	if resumeTruncated {
		notes = append(notes, "Resume text was truncated.")
		warnings = append(warnings, "Resume text was truncated for analysis")
	}

	var buf bytes.Buffer
	if err := uc.userTemplate.Execute(&buf, map[string]string{
		"JDText":         jdText,
		"ResumeText":     resumeText,
		"TruncationNote": strings.Join(notes, " "),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute user prompt template")
	}
	userPrompt := buf.String()

	logger.Info("Calling LLM for comparison",
		"jd_chars", len(jdText),
		"resume_chars", len(resumeText),
		"prompt_length", len(userPrompt),
	)

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session", goerr.T(types.ErrTagUpstream))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(userPrompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate LLM content", goerr.T(types.ErrTagUpstream))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("no response from LLM", goerr.T(types.ErrTagUpstream))
	}

	raw := resp.Texts[0]
	if strings.TrimSpace(raw) == "" {
		return nil, goerr.New("empty completion text from LLM", goerr.T(types.ErrTagUpstream))
	}
	data, ok := parseResultJSON(raw)
	if !ok {
		// The model ignored the JSON instruction. Return a usable zero
		// result instead of failing the whole request.
		logger.Warn("LLM returned unparseable JSON", "response", previewForLog(raw))
		return &model.CompareResult{
			MatchPercent:  0,
			MatchedSkills: []string{},
			MissingSkills: []string{},
			Warnings: append(warnings,
				"Model returned invalid JSON response",
				"Response preview: "+previewForLog(raw),
			),
		}, nil
	}

	result := coerceResult(data)
	result.Warnings = append(result.Warnings, warnings...)
	if len(result.Warnings) == 0 {
		result.Warnings = nil
	}

	logger.Info("Comparison complete",
		"match_percent", result.MatchPercent,
		"matched", len(result.MatchedSkills),
		"missing", len(result.MissingSkills),
	)

	return result, nil
}

func truncateForPrompt(text string) (string, bool) {
	if len(text) > maxPromptTextLen {
		return cutAtRuneBoundary(text, maxPromptTextLen), true
	}
	return text, false
}

func previewForLog(raw string) string {
	const maxPreview = 200
	raw = strings.TrimSpace(raw)
	if len(raw) > maxPreview {
		return cutAtRuneBoundary(raw, maxPreview) + "..."
	}
	return raw
}

// cutAtRuneBoundary truncates s to at most limit bytes without splitting a
// multi-byte rune
func cutAtRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
