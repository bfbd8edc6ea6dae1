package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const pdfMIME = "application/pdf"

var (
	ErrNotPDF     = errors.New("file is not a PDF")
	ErrExtraction = errors.New("failed to extract PDF text")
	ErrEmptyText  = errors.New("O conteúdo do PDF não pôde ser lido ou está vazio.")
)

// Text is the extracted content of a PDF, one entry per page.
type Text struct {
	Pages []string
}

// String joins the pages with newlines.
func (t Text) String() string {
	return strings.Join(t.Pages, "\n")
}

// CheckPDF rejects uploads whose declared or sniffed type is not a PDF.
func CheckPDF(declared string, data []byte) error {
	if declared != "" && !strings.HasPrefix(strings.ToLower(declared), pdfMIME) &&
		declared != "application/octet-stream" {
		return ErrNotPDF
	}
	if !mimetype.Detect(data).Is(pdfMIME) {
		return ErrNotPDF
	}
	return nil
}

// Extract reads every page of the PDF and collects the text painted on it.
// Items on a page are joined with spaces.
func Extract(data []byte) (Text, error) {
	if err := CheckPDF("", data); err != nil {
		return Text{}, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return Text{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return Text{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	text := Text{Pages: make([]string, 0, ctx.PageCount)}
	for page := 1; page <= ctx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil {
			return Text{}, fmt.Errorf("%w: page %d: %v", ErrExtraction, page, err)
		}
		if r == nil {
			text.Pages = append(text.Pages, "")
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return Text{}, fmt.Errorf("%w: page %d: %v", ErrExtraction, page, err)
		}
		text.Pages = append(text.Pages, strings.Join(textItems(content), " "))
	}

	if strings.TrimSpace(text.String()) == "" {
		return Text{}, ErrEmptyText
	}
	return text, nil
}
