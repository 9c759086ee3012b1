package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/resumediff/resumediff/pkg/domain/model"
	"github.com/resumediff/resumediff/pkg/domain/types"
)

func TestSanitize(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		clean, truncated := sanitize("  Hello   World  \n\n\n  Test  ", 1000)
		gt.V(t, strings.Contains(clean, "Hello World")).Equal(true)
		gt.V(t, strings.Contains(clean, "\n\n\n")).Equal(false)
		gt.V(t, truncated).Equal(false)
	})

	t.Run("removes NUL bytes", func(t *testing.T) {
		clean, _ := sanitize("Hello\x00World", 1000)
		gt.V(t, clean).Equal("HelloWorld")
	})

	t.Run("truncates long text", func(t *testing.T) {
		clean, truncated := sanitize(strings.Repeat("A", 2000), 1000)
		gt.V(t, len(clean)).Equal(1000)
		gt.V(t, truncated).Equal(true)
	})

	t.Run("truncation keeps valid UTF-8", func(t *testing.T) {
		// 3-byte runes that do not divide the limit evenly
		clean, truncated := sanitize(strings.Repeat("あ", 500), 1000)
		gt.V(t, truncated).Equal(true)
		gt.V(t, utf8.ValidString(clean)).Equal(true)
		gt.V(t, len(clean)).Equal(999)
	})
}

func TestExtractTXT(t *testing.T) {
	t.Run("utf-8", func(t *testing.T) {
		text, err := extractTXT([]byte("Hello World\nPython Developer"))
		gt.NoError(t, err)
		gt.V(t, strings.Contains(text, "Python Developer")).Equal(true)
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		text, err := extractTXT([]byte{'C', 'a', 'f', 0xE9}) // "Café" in Latin-1
		gt.NoError(t, err)
		gt.V(t, text).Equal("Café")
	})
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	gt.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	gt.NoError(t, err)
	gt.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Senior Go Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Built services with PostgreSQL</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Docker</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  </w:body>
</w:document>`

	text, err := extractDOCX(buildDOCX(t, docXML))
	gt.NoError(t, err)
	gt.V(t, strings.Contains(text, "Senior Go Engineer")).Equal(true)
	gt.V(t, strings.Contains(text, "PostgreSQL")).Equal(true)
	gt.V(t, strings.Contains(text, "Docker")).Equal(true)

	t.Run("not a zip", func(t *testing.T) {
		_, err := extractDOCX([]byte("plain text, not a zip"))
		gt.Error(t, err)
	})

	t.Run("missing document.xml", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		f, err := zw.Create("other.txt")
		gt.NoError(t, err)
		_, _ = f.Write([]byte("hi"))
		gt.NoError(t, zw.Close())

		_, err = extractDOCX(buf.Bytes())
		gt.Error(t, err)
	})
}

func TestExtractor_ExtractText(t *testing.T) {
	ctx := context.Background()
	x := New(1024, 100)

	t.Run("txt document", func(t *testing.T) {
		doc := &model.Document{
			Filename:    "resume.txt",
			ContentType: "text/plain",
			Data:        []byte("Go developer with   five years of experience"),
		}
		text, warning, err := x.ExtractText(ctx, doc)
		gt.NoError(t, err)
		gt.V(t, warning).Equal("")
		gt.V(t, text).Equal("Go developer with five years of experience")
	})

	t.Run("truncation warning", func(t *testing.T) {
		doc := &model.Document{
			Filename: "resume.txt",
			Data:     []byte(strings.Repeat("B", 500)),
		}
		text, warning, err := x.ExtractText(ctx, doc)
		gt.NoError(t, err)
		gt.V(t, len(text)).Equal(100)
		gt.V(t, strings.Contains(warning, "truncated")).Equal(true)
	})

	t.Run("oversize upload rejected", func(t *testing.T) {
		doc := &model.Document{
			Filename: "resume.txt",
			Data:     bytes.Repeat([]byte("A"), 2048),
		}
		_, _, err := x.ExtractText(ctx, doc)
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.ErrTagTooLarge)).Equal(true)
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		doc := &model.Document{
			Filename:    "resume.exe",
			ContentType: "application/octet-stream",
			Data:        []byte("MZ binary content here"),
		}
		_, _, err := x.ExtractText(ctx, doc)
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.ErrTagBadRequest)).Equal(true)
	})

	t.Run("too short after sanitize", func(t *testing.T) {
		doc := &model.Document{
			Filename: "resume.txt",
			Data:     []byte("   x   "),
		}
		_, _, err := x.ExtractText(ctx, doc)
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.ErrTagBadRequest)).Equal(true)
	})

	t.Run("broken pdf surfaces error", func(t *testing.T) {
		doc := &model.Document{
			Filename:    "resume.pdf",
			ContentType: "application/pdf",
			Data:        []byte("not a real pdf"),
		}
		_, _, err := x.ExtractText(ctx, doc)
		gt.Error(t, err)
	})
}

func TestDocumentKind(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        model.DocumentKind
	}{
		{"pdf by content type", "cv.bin", "application/pdf", model.KindPDF},
		{"pdf by extension", "cv.PDF", "", model.KindPDF},
		{"docx by content type", "cv", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", model.KindDOCX},
		{"doc by extension", "cv.doc", "", model.KindDOCX},
		{"txt by content type", "cv", "text/plain", model.KindText},
		{"unknown", "cv.exe", "application/octet-stream", model.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &model.Document{Filename: tt.filename, ContentType: tt.contentType}
			gt.V(t, doc.Kind()).Equal(tt.want)
		})
	}
}
