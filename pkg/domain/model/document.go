package model

import "strings"

// DocumentKind represents a supported upload format
type DocumentKind string

const (
	KindPDF     DocumentKind = "pdf"
	KindDOCX    DocumentKind = "docx"
	KindText    DocumentKind = "txt"
	KindUnknown DocumentKind = "unknown"
)

// Document is an uploaded file to extract text from
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Kind resolves the document format from the content type, falling back to
// the filename extension
func (d *Document) Kind() DocumentKind {
	switch d.ContentType {
	case "application/pdf":
		return KindPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword":
		return KindDOCX
	case "text/plain":
		return KindText
	}

	name := strings.ToLower(d.Filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return KindPDF
	case strings.HasSuffix(name, ".docx"), strings.HasSuffix(name, ".doc"):
		return KindDOCX
	case strings.HasSuffix(name, ".txt"):
		return KindText
	}

	return KindUnknown
}
