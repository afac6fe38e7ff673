package formats

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// Docx joins the body paragraphs of a Word document with "\n". Paragraphs
// nested in tables are not part of the body and are skipped.
type Docx struct{}

func (Docx) Text(_ context.Context, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("docx: %w", err)
		}
		defer rc.Close()
		paras, err := docxParagraphs(rc)
		if err != nil {
			return "", fmt.Errorf("docx: %w", err)
		}
		return strings.Join(paras, "\n"), nil
	}
	return "", errors.New("docx: " + docxBody + " not found")
}

func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		paras    []string
		cur      strings.Builder
		tblDepth int
		inPara   bool
		inText   bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paras, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "p":
				if tblDepth == 0 {
					inPara = true
					cur.Reset()
				}
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth--
			case "p":
				if inPara && tblDepth == 0 {
					paras = append(paras, cur.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
}
