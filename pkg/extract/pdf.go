package extract

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// extractPDF extracts text from a PDF page by page. Pages that fail to
// extract are skipped with a warning so one broken page does not lose the
// whole document.
func extractPDF(ctx context.Context, data []byte, filename string) (string, error) {
	logger := ctxlog.From(ctx)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open PDF")
	}

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Failed to extract PDF page",
				"filename", filename,
				"page", i,
				"error", err,
			)
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", goerr.New("no extractable text in PDF")
	}

	return strings.Join(parts, "\n"), nil
}
