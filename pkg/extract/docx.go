package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// extractDOCX extracts text from a DOCX archive by walking the
// WordprocessingML in word/document.xml. Paragraph and table cell ends become
// line breaks.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open DOCX archive")
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", goerr.Wrap(err, "failed to open word/document.xml")
			}
			break
		}
	}
	if docXML == nil {
		return "", goerr.New("word/document.xml not found in DOCX archive")
	}
	defer docXML.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(docXML)
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", goerr.Wrap(err, "failed to parse word/document.xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "tc":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", goerr.New("no extractable text in DOCX")
	}

	return text, nil
}
