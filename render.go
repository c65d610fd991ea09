package gridlist

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used to fill nodes without an Image.
// Created on first draw so the package can be used without a graphics context.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Draw renders the viewport's subtree into screen, clipped to Bounds.
func (v *ScrollView) Draw(screen *ebiten.Image) {
	clip := image.Rect(
		int(v.Bounds.X), int(v.Bounds.Y),
		int(v.Bounds.X+v.Bounds.Width), int(v.Bounds.Y+v.Bounds.Height),
	)
	target, ok := screen.SubImage(clip).(*ebiten.Image)
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	v.drawNode(target, v.viewport, 0, 0, &op)
}

// drawNode draws n and its children depth-first in child order. parentX and
// parentY are the parent's world position.
func (v *ScrollView) drawNode(target *ebiten.Image, n *Node, parentX, parentY float64, op *ebiten.DrawImageOptions) {
	if !n.Visible {
		return
	}
	wx, wy := parentX+n.X, parentY+n.Y

	if n != v.content && n != v.viewport && n.Width > 0 && n.Height > 0 && v.inView(wy, n.Height) {
		v.drawSelf(target, n, wx, wy, op)
	}
	for _, child := range n.Children() {
		v.drawNode(target, child, wx, wy, op)
	}
}

// inView reports whether a node centered at world y with height h overlaps
// the viewport vertically.
func (v *ScrollView) inView(wy, h float64) bool {
	half := v.Bounds.Height * 0.5
	return wy-h*0.5 <= half && wy+h*0.5 >= -half
}

func (v *ScrollView) drawSelf(target *ebiten.Image, n *Node, wx, wy float64, op *ebiten.DrawImageOptions) {
	img := n.Image
	c := n.Color
	if img == nil {
		if c.A <= 0 {
			return
		}
		img = solidImage()
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	sx, sy := v.worldToScreen(wx, wy)
	op.GeoM.Reset()
	op.GeoM.Scale(n.Width/iw, n.Height/ih)
	op.GeoM.Translate(sx-n.Width*0.5, sy-n.Height*0.5)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	target.DrawImage(img, op)
}
