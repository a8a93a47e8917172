package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user string ("xlsx", "PDF", "yml") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", eris.Errorf("export: unknown format %q (xlsx, pdf, yaml)", s)
}

// DefaultFileName returns the file name used when no output path is given.
func (f Format) DefaultFileName() string {
	return "preventivo." + string(f)
}

// Render encodes data in the given format.
func Render(data Data, f Format) ([]byte, error) {
	switch f {
	case FormatXLSX:
		return GenerateExcel(data)
	case FormatPDF:
		return GeneratePDF(data)
	case FormatYAML:
		return GenerateYAML(data)
	}
	return nil, eris.Errorf("export: unknown format %q", f)
}

// WriteFile renders data and writes it to path, or to DefaultFileName in
// dir when path is empty. It returns the written path.
func WriteFile(data Data, f Format, path, dir string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, f.DefaultFileName())
	}

	out, err := Render(data, f)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", eris.Wrapf(err, "export: write %s", path)
	}

	zap.L().Named("export").Info("export written",
		zap.String("path", path),
		zap.String("format", string(f)),
		zap.Int("bytes", len(out)),
		zap.String("reference", data.Reference),
	)
	return path, nil
}
