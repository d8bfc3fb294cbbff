package cli

import (
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/filex"
)

// maxImageFileBytes caps what is read from disk before any encoding.
const maxImageFileBytes = 20 << 20

// readFile is a test seam.
var readFile = filex.ReadLimited

// parseImageLine splits "path | alt text". Without an explicit alt text the
// file name minus its extension is used.
func parseImageLine(line string) (path, alt string) {
	path, alt, _ = strings.Cut(line, "|")
	path = strings.TrimSpace(path)
	alt = strings.TrimSpace(alt)
	if alt == "" && path != "" {
		base := filepath.Base(path)
		alt = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return path, alt
}

func loadImage(line string) (models.ImageFile, error) {
	path, alt := parseImageLine(line)
	data, err := readFile(path, maxImageFileBytes)
	if err != nil {
		return models.ImageFile{}, err
	}
	return models.ImageFile{Name: filepath.Base(path), AltText: alt, Content: data}, nil
}

// promptImages collects image lines until an empty line and loads them.
func (a *App) promptImages(prompt string) ([]models.ImageFile, error) {
	lines, err := GetLines(a.reader, prompt+" (one per line, \"path | alt text\")", a.out)
	if err != nil {
		return nil, err
	}

	files := make([]models.ImageFile, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		f, err := loadImage(l)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
