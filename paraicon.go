package paraicon

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/paraicon/config"
	"github.com/k1LoW/paraicon/handler/confirm"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Generator renders square text icons and writes them as PNG files.
type Generator struct {
	cfg      *config.Config
	bg       color.RGBA
	fg       color.RGBA
	dir      string
	loadFace FaceLoader
	logger   *slog.Logger
}

type Option func(*Generator) error

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// WithDir sets the directory icons are written to.
func WithDir(dir string) Option {
	return func(g *Generator) error {
		if dir == "" {
			return fmt.Errorf("empty output directory")
		}
		g.dir = dir
		return nil
	}
}

func WithFaceLoader(loader FaceLoader) Option {
	return func(g *Generator) error {
		if loader == nil {
			return fmt.Errorf("nil face loader")
		}
		g.loadFace = loader
		return nil
	}
}

// New creates a new Generator.
func New(cfg *config.Config, opts ...Option) (_ *Generator, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:      cfg,
		dir:      ".",
		loadFace: DefaultFaceLoader,
	}
	// colors are fixed at construction
	if g.bg, err = cfg.BackgroundColor(); err != nil {
		return nil, err
	}
	if g.fg, err = cfg.ForegroundColor(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return g, nil
}

// Run generates one icon per configured size, in order. The first failure stops the run.
func (g *Generator) Run() (_ []string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var paths []string
	for _, size := range g.cfg.Sizes {
		p, err := g.Generate(size)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Generate renders the icon of the given size and writes it, replacing any existing file.
func (g *Generator) Generate(size int) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	img, err := g.Render(size)
	if err != nil {
		return "", err
	}
	name := g.cfg.Filename(size)
	p := filepath.Join(g.dir, name)
	if err := writePNG(p, img); err != nil {
		return "", err
	}
	g.logger.Info(confirm.MessageCreated, slog.String(confirm.AttrFile, name), slog.Int("size", size))
	return p, nil
}

// Render draws the icon of the given size in memory.
func (g *Generator) Render(size int) (_ *image.RGBA, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size: %d", size)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(g.bg), image.Point{}, draw.Src)

	text := g.cfg.Text
	d := &font.Drawer{
		Dst: img,
		Src: image.NewUniform(g.fg),
	}
	if face, ok := g.loadFace(size); ok {
		box := measure(face, text)
		x := (size - box.width()) / 2
		y := (size - box.height()) / 2
		d.Face = face
		d.Dot = box.dot(x, y)
	} else {
		g.logger.Debug("no font face available, estimating text box", slog.Int("size", size))
		box := estimate(text, size)
		x := (size - box.width()) / 2
		y := (size - box.height()) / 2
		// The built-in face still draws, anchored at the top of its ascent.
		d.Face = basicfont.Face7x13
		d.Dot = fixed.P(x, y+basicfont.Face7x13.Ascent)
	}
	d.DrawString(text)
	return img, nil
}

func writePNG(p string, img image.Image) (err error) {
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", p, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", p, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", p, err)
	}
	return nil
}
