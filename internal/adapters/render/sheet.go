package render

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
	"github.com/KillerxG/RPG-YGO-Delta/internal/ports"
)

var (
	background  = color.NRGBA{A: 0xff}
	superFrame  = color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	secretFrame = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	missingCard = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// Sheet lays a draw result out as a grid of framed card images.
type Sheet struct {
	catalog ports.Catalog
	log     *slog.Logger

	CardWidth  int
	CardHeight int
	Border     int
	Gap        int
	Columns    int
}

func NewSheet(catalog ports.Catalog, logger *slog.Logger) *Sheet {
	return &Sheet{
		catalog:    catalog,
		log:        logger,
		CardWidth:  200,
		CardHeight: 280,
		Border:     6,
		Gap:        10,
		Columns:    5,
	}
}

func (s *Sheet) cellSize() (int, int) {
	return s.CardWidth + 2*s.Border, s.CardHeight + 2*s.Border
}

// Render draws cards in result order, row by row.
func (s *Sheet) Render(ctx context.Context, cards []domain.DrawnCard) image.Image {
	cellW, cellH := s.cellSize()
	perRow := max(s.Columns, 1)
	cols := min(perRow, max(len(cards), 1))
	rows := max((len(cards)+perRow-1)/perRow, 1)

	width := cols*cellW + (cols+1)*s.Gap
	height := rows*cellH + (rows+1)*s.Gap
	canvas := imaging.New(width, height, background)

	for i, c := range cards {
		x := s.Gap + (i%perRow)*(cellW+s.Gap)
		y := s.Gap + (i/perRow)*(cellH+s.Gap)
		canvas = imaging.Paste(canvas, s.tile(ctx, c), image.Pt(x, y))
	}
	return canvas
}

// RenderPNG renders cards and encodes the sheet as PNG.
func (s *Sheet) RenderPNG(ctx context.Context, cards []domain.DrawnCard, w io.Writer) error {
	return imaging.Encode(w, s.Render(ctx, cards), imaging.PNG)
}

func (s *Sheet) tile(ctx context.Context, c domain.DrawnCard) image.Image {
	cellW, cellH := s.cellSize()

	face := s.load(ctx, c.Card)
	face = imaging.Resize(face, s.CardWidth, s.CardHeight, imaging.Lanczos)

	frame := background
	switch c.Tier {
	case domain.TierSuperRare:
		frame = superFrame
	case domain.TierSecretRare:
		frame = secretFrame
	}

	cell := imaging.New(cellW, cellH, frame)
	return imaging.Paste(cell, face, image.Pt(s.Border, s.Border))
}

func (s *Sheet) load(ctx context.Context, c domain.Card) image.Image {
	placeholder := imaging.New(s.CardWidth, s.CardHeight, missingCard)

	rc, err := s.catalog.Open(ctx, c.Path)
	if err != nil {
		s.log.WarnContext(ctx, "card image unavailable", "path", c.Path, "error", err)
		return placeholder
	}
	defer rc.Close()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		s.log.WarnContext(ctx, "card image unreadable", "path", c.Path, "error", err)
		return placeholder
	}
	return img
}
