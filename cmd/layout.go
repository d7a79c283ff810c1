package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Render the display and window layout to a PNG",
	Long: `Render a map of the connected displays, their on-screen windows, and the
current pointer position to a PNG file. Useful for debugging multi-display
geometry: which display owns which coordinates, and where the candidate
windows sit.`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().String("out", "layout.png", "Output PNG path")
	layoutCmd.Flags().Int("width", 1200, "Image width in pixels")
}

func runLayout(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	width, _ := cmd.Flags().GetInt("width")

	displays, err := provider.Screens.ListDisplays()
	if err != nil {
		return err
	}
	if len(displays) == 0 {
		return fmt.Errorf("no displays found")
	}
	windows, err := provider.WindowManager.ListWindows(platform.ListOptions{})
	if err != nil {
		return err
	}
	var pointer *model.Point
	if pos, err := provider.Pointer.Position(); err == nil {
		pointer = &pos
	}

	img := renderLayout(displays, windows, pointer, width)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d displays, %d windows)\n", outPath, len(displays), len(windows))
	return nil
}

const layoutMargin = 20

// renderLayout draws the virtual desktop scaled to fit the given pixel width:
// display outlines with IDs, window boxes labeled by app, and a pointer
// crosshair.
func renderLayout(displays []model.Display, windows []model.Window, pointer *model.Point, width int) *image.RGBA {
	minX, minY := displays[0].Bounds.X, displays[0].Bounds.Y
	maxX, maxY := minX, minY
	for _, d := range displays {
		if d.Bounds.X < minX {
			minX = d.Bounds.X
		}
		if d.Bounds.Y < minY {
			minY = d.Bounds.Y
		}
		if r := d.Bounds.X + d.Bounds.Width; r > maxX {
			maxX = r
		}
		if b := d.Bounds.Y + d.Bounds.Height; b > maxY {
			maxY = b
		}
	}

	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	scale := float64(width-2*layoutMargin) / float64(spanX)
	height := int(float64(spanY)*scale) + 2*layoutMargin

	toPx := func(p model.Point) (int, int) {
		return layoutMargin + int(float64(p.X-minX)*scale),
			layoutMargin + int(float64(p.Y-minY)*scale)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 24, G: 24, B: 28, A: 255}), image.Point{}, draw.Src)

	displayColor := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	windowColor := color.RGBA{R: 90, G: 150, B: 250, A: 255}
	focusedColor := color.RGBA{R: 80, G: 220, B: 120, A: 255}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	for _, d := range displays {
		x1, y1 := toPx(model.Point{X: d.Bounds.X, Y: d.Bounds.Y})
		x2, y2 := toPx(model.Point{X: d.Bounds.X + d.Bounds.Width, Y: d.Bounds.Y + d.Bounds.Height})
		drawRect(img, x1, y1, x2, y2, displayColor)
		label := fmt.Sprintf("D%d %dx%d", d.ID, d.Bounds.Width, d.Bounds.Height)
		if d.Primary {
			label += " *"
		}
		drawLabel(img, label, x1+4, y1+14, textColor)
	}

	// Back-to-front so frontmost windows draw on top.
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		if !w.Visible || !w.Standard {
			continue
		}
		x1, y1 := toPx(model.Point{X: w.Bounds.X, Y: w.Bounds.Y})
		x2, y2 := toPx(model.Point{X: w.Bounds.X + w.Bounds.Width, Y: w.Bounds.Y + w.Bounds.Height})
		c := windowColor
		if w.Focused {
			c = focusedColor
		}
		drawRect(img, x1, y1, x2, y2, c)
		drawLabel(img, w.App, x1+3, y1+12, c)
	}

	if pointer != nil {
		px, py := toPx(*pointer)
		for d := -5; d <= 5; d++ {
			set(img, px+d, py, textColor)
			set(img, px, py+d, textColor)
		}
	}

	return img
}

func set(img *image.RGBA, x, y int, c color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// drawRect draws a rectangle outline clamped to the image bounds.
func drawRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x <= x2; x++ {
		set(img, x, y1, c)
		set(img, x, y2, c)
	}
	for y := y1; y <= y2; y++ {
		set(img, x1, y, c)
		set(img, x2, y, c)
	}
}

func drawLabel(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}
