package extract

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resumediff/resumediff/pkg/domain/model"
	"github.com/resumediff/resumediff/pkg/domain/types"
)

const minExtractedLength = 10

// Extractor converts uploaded documents into sanitized plain text
type Extractor struct {
	maxFileSize int64
	maxTextLen  int
}

// New creates an Extractor with the given upload limits
func New(maxFileSize int64, maxTextLen int) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
		maxTextLen:  maxTextLen,
	}
}

// ExtractText extracts and sanitizes text from a document. The returned
// warning is non-empty when the text was truncated to the configured limit.
func (x *Extractor) ExtractText(ctx context.Context, doc *model.Document) (string, string, error) {
	logger := ctxlog.From(ctx)

	if size := int64(len(doc.Data)); size > x.maxFileSize {
		return "", "", goerr.New("file size exceeds maximum allowed size",
			goerr.V("filename", doc.Filename),
			goerr.V("size", size),
			goerr.V("max_size", x.maxFileSize),
			goerr.T(types.ErrTagTooLarge),
		)
	}

	logger.Info("Extracting text from document",
		"filename", doc.Filename,
		"content_type", doc.ContentType,
		"size_bytes", len(doc.Data),
	)

	var raw string
	var err error

	switch doc.Kind() {
	case model.KindPDF:
		raw, err = extractPDF(ctx, doc.Data, doc.Filename)
	case model.KindDOCX:
		raw, err = extractDOCX(doc.Data)
	case model.KindText:
		raw, err = extractTXT(doc.Data)
	default:
		return "", "", goerr.New("unsupported file type, supported types: PDF, DOCX, DOC, TXT",
			goerr.V("filename", doc.Filename),
			goerr.V("content_type", doc.ContentType),
			goerr.T(types.ErrTagBadRequest),
		)
	}
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to extract text",
			goerr.V("filename", doc.Filename),
		)
	}

	clean, truncated := sanitize(raw, x.maxTextLen)

	if len(clean) < minExtractedLength {
		return "", "", goerr.New("extracted text is too short or empty",
			goerr.V("filename", doc.Filename),
			goerr.T(types.ErrTagBadRequest),
		)
	}

	var warning string
	if truncated {
		warning = fmt.Sprintf("Text from %s was truncated to %d characters", doc.Filename, x.maxTextLen)
		logger.Warn("Extracted text truncated",
			"filename", doc.Filename,
			"max_length", x.maxTextLen,
		)
	}

	return clean, warning, nil
}
