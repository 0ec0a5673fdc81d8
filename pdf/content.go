package pdf

import (
	"bytes"
	"fmt"
	"math"

	"github.com/scottcrawfordcoach/pdf-creator/layout"
	"github.com/scottcrawfordcoach/pdf-creator/palette"
)

// fontRes maps the layout font IDs to content-stream resource names.
var fontRes = map[layout.FontID]string{
	layout.FontRegular: "F1",
	layout.FontBold:    "F2",
	layout.FontItalic:  "F3",
}

// contentStream serializes a page's primitives into PDF graphics
// operators. imageNames and alphaNames resolve the resource names
// registered by the writer.
func contentStream(prims []layout.Primitive, imageNames map[string]string, alphaNames map[float64]string) []byte {
	var b bytes.Buffer
	for _, p := range prims {
		switch t := p.(type) {
		case layout.RectPrim:
			writeRect(&b, t)
		case layout.LinePrim:
			writeLine(&b, t)
		case layout.TextPrim:
			writeText(&b, t, alphaNames)
		case layout.ImagePrim:
			writeImage(&b, t, imageNames)
		}
	}
	return b.Bytes()
}

func writeRect(b *bytes.Buffer, t layout.RectPrim) {
	b.WriteString("q\n")
	op := ""
	if t.Fill != nil {
		fmt.Fprintf(b, "%s rg\n", rgb(*t.Fill))
		op = "f"
	}
	if t.Stroke != nil {
		lw := t.LineWidth
		if lw <= 0 {
			lw = 1
		}
		fmt.Fprintf(b, "%s RG\n%s w\n", rgbStroke(*t.Stroke), formatReal(lw))
		if op == "f" {
			op = "B"
		} else {
			op = "S"
		}
	}
	if op == "" {
		op = "S"
	}
	fmt.Fprintf(b, "%s %s %s %s re\n%s\nQ\n",
		formatReal(t.X), formatReal(t.Y), formatReal(t.W), formatReal(t.H), op)
}

func writeLine(b *bytes.Buffer, t layout.LinePrim) {
	lw := t.Width
	if lw <= 0 {
		lw = 1
	}
	fmt.Fprintf(b, "q\n%s RG\n%s w\n%s %s m\n%s %s l\nS\nQ\n",
		rgbStroke(t.Color), formatReal(lw),
		formatReal(t.X1), formatReal(t.Y1), formatReal(t.X2), formatReal(t.Y2))
}

func writeText(b *bytes.Buffer, t layout.TextPrim, alphaNames map[float64]string) {
	b.WriteString("q\n")
	if t.Alpha > 0 && t.Alpha < 1 {
		fmt.Fprintf(b, "/%s gs\n", alphaNames[t.Alpha])
	}
	fmt.Fprintf(b, "BT\n/%s %s Tf\n%s rg\n", fontRes[t.Font], formatReal(t.Size), rgb(t.Color))
	if t.Rotate != 0 {
		rad := t.Rotate * math.Pi / 180
		c, s := math.Cos(rad), math.Sin(rad)
		fmt.Fprintf(b, "%s %s %s %s %s %s Tm\n",
			formatReal(c), formatReal(s), formatReal(-s), formatReal(c),
			formatReal(t.X), formatReal(t.Y))
	} else {
		fmt.Fprintf(b, "1 0 0 1 %s %s Tm\n", formatReal(t.X), formatReal(t.Y))
	}
	fmt.Fprintf(b, "(%s) Tj\nET\nQ\n", encodeText(t.Text))
}

func writeImage(b *bytes.Buffer, t layout.ImagePrim, imageNames map[string]string) {
	name, ok := imageNames[t.Key]
	if !ok {
		return
	}
	fmt.Fprintf(b, "q\n%s 0 0 %s %s %s cm\n/%s Do\nQ\n",
		formatReal(t.W), formatReal(t.H), formatReal(t.X), formatReal(t.Y), name)
}

// rgb renders a non-stroking color operand scaled to 0-1.
func rgb(c palette.RGB) string {
	return fmt.Sprintf("%s %s %s",
		formatReal(float64(c.R)/255), formatReal(float64(c.G)/255), formatReal(float64(c.B)/255))
}

func rgbStroke(c palette.RGB) string {
	return rgb(c)
}
