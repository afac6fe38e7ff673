package formats

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// PDF shells out to poppler's pdftotext. It is only registered when the
// binary is configured.
type PDF struct {
	Bin string // path to pdftotext; "" means look it up on PATH
}

func (p PDF) Text(ctx context.Context, r io.Reader) (string, error) {
	bin := p.Bin
	if bin == "" {
		bin = "pdftotext"
	}
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	out, err := exec.CommandContext(ctx, bin, "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}

// PDFAvailable reports whether the pdftotext binary can be found.
func PDFAvailable(bin string) bool {
	if bin == "" {
		bin = "pdftotext"
	}
	_, err := exec.LookPath(bin)
	return err == nil
}
