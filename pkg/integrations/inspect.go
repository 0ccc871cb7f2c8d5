package integrations

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/kerbaras/logolink/pkg/sources"
	"github.com/spf13/afero"
	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension is the largest width or height a logo should have
// before it is flagged as oversized.
const DefaultMaxDimension = 1024

// LogoInfo describes a logo file on disk.
type LogoInfo struct {
	Name      string
	Format    string
	Width     int
	Height    int
	Size      int64
	Vector    bool
	Oversized bool
	Err       error
}

// Inspector reads logo files and reports their format and dimensions.
type Inspector struct {
	fs           afero.Fs
	dir          string
	maxDimension int
}

// NewInspector creates an inspector for the logos in dir.
func NewInspector(fs afero.Fs, dir string) *Inspector {
	return &Inspector{fs: fs, dir: dir, maxDimension: DefaultMaxDimension}
}

// SetMaxDimension changes the oversized threshold; values <= 0 disable it.
func (i *Inspector) SetMaxDimension(max int) {
	i.maxDimension = max
}

// Inspect decodes the header of a single logo.
func (i *Inspector) Inspect(name string) LogoInfo {
	info := LogoInfo{Name: name}
	path := filepath.Join(i.dir, name)

	stat, err := i.fs.Stat(path)
	if err != nil {
		info.Err = err
		return info
	}
	if stat.IsDir() {
		info.Err = fmt.Errorf("%s is a directory", name)
		return info
	}
	info.Size = stat.Size()

	content, err := afero.ReadFile(i.fs, path)
	if err != nil {
		info.Err = err
		return info
	}

	if strings.EqualFold(filepath.Ext(name), ".svg") {
		i.inspectSVG(&info, content)
	} else {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
		if err != nil {
			info.Err = fmt.Errorf("failed to decode image: %w", err)
			return info
		}
		info.Format = format
		info.Width = cfg.Width
		info.Height = cfg.Height
	}

	if info.Err == nil && i.maxDimension > 0 {
		info.Oversized = info.Width > i.maxDimension || info.Height > i.maxDimension
	}
	return info
}

func (i *Inspector) inspectSVG(info *LogoInfo, content []byte) {
	info.Format = "svg"
	info.Vector = true

	icon, err := oksvg.ReadIconStream(bytes.NewReader(content), oksvg.IgnoreErrorMode)
	if err != nil {
		info.Err = fmt.Errorf("failed to parse svg: %w", err)
		return
	}
	info.Width = int(math.Round(icon.ViewBox.W))
	info.Height = int(math.Round(icon.ViewBox.H))
}

// InspectAll inspects every logo of the inventory in name order.
func (i *Inspector) InspectAll(inv sources.Inventory) []LogoInfo {
	names := inv.Names()
	infos := make([]LogoInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, i.Inspect(name))
	}
	return infos
}
