package dwgbits

import "math"

// ColorMethod is the top byte of a truecolor value.
type ColorMethod uint8

const (
	ColorUnset   ColorMethod = 0
	ColorByLayer ColorMethod = 0xC0
	ColorByBlock ColorMethod = 0xC1
	ColorRGB     ColorMethod = 0xC2
	ColorIndexed ColorMethod = 0xC3
	ColorNone    ColorMethod = 0xC8
)

// Special color indexes.
const (
	IndexByBlock uint16 = 0
	IndexByLayer uint16 = 256
	IndexNone    uint16 = 257
)

// Color flag bits telling which names follow a truecolor.
const (
	ColorFlagName = 1
	ColorFlagBook = 2
)

// Color is a palette index, optionally refined by a truecolor value from
// R2004 on.
type Color struct {
	Index uint16
	// RGB holds the method in the top byte and 0xRRGGBB below.
	RGB      uint32
	Flag     uint8
	Name     Text
	BookName Text
	// Alpha is the transparency as stored, its type in the top byte.
	Alpha uint32
	// Book references a named book color (entity colors only).
	Book *Handle
}

// Method returns the truecolor method.
func (c Color) Method() ColorMethod { return ColorMethod(c.RGB >> 24) }

// Truecolor returns the red, green and blue components.
func (c Color) Truecolor() (r, g, b uint8) {
	return uint8(c.RGB >> 16), uint8(c.RGB >> 8), uint8(c.RGB)
}

// Upconvert fills the truecolor method of a color that only has an index.
func (c *Color) Upconvert() {
	if c.Method() != ColorUnset {
		return
	}
	switch c.Index {
	case IndexByBlock:
		c.RGB = uint32(ColorByBlock) << 24
	case IndexByLayer:
		c.RGB = uint32(ColorByLayer) << 24
	case IndexNone:
		c.RGB = uint32(ColorNone) << 24
	default:
		c.RGB = uint32(ColorIndexed)<<24 | uint32(c.Index&0xFF)
	}
}

// Downconvert reduces a truecolor to the nearest palette index and drops the
// fields older releases cannot store.
func (c *Color) Downconvert() {
	switch c.Method() {
	case ColorUnset:
		return
	case ColorByLayer:
		c.Index = IndexByLayer
	case ColorByBlock:
		c.Index = IndexByBlock
	case ColorNone:
		c.Index = IndexNone
	case ColorIndexed:
		c.Index = uint16(c.RGB & 0xFF)
	case ColorRGB:
		r, g, b := c.Truecolor()
		c.Index = NearestIndex(r, g, b)
	}
	c.RGB = 0
	c.Flag = 0
	c.Name = Text{}
	c.BookName = Text{}
	c.Alpha = 0
	c.Book = nil
}

// ReadCMC reads a color. From R2004 it carries rgb, a flag byte and the
// names the flag announces, read from str (c itself when str is nil).
func (c *Cursor) ReadCMC(str *Cursor) Color {
	col := Color{Index: c.ReadBS()}
	if !c.SourceVariant().Truecolor {
		return col
	}
	col.RGB = c.ReadBL()
	col.Flag = c.ReadRC()
	if str == nil {
		str = c
	}
	if col.Flag&ColorFlagName != 0 {
		col.Name = str.ReadT()
	}
	if col.Flag&ColorFlagBook != 0 {
		col.BookName = str.ReadT()
	}
	if m := col.Method(); m != ColorUnset && (m < ColorByLayer || m > ColorNone) {
		c.report(SeverityWarning, CodeInvalidValue, "CMC", "color method %#02x", uint8(m))
	}
	if col.Index > IndexNone {
		c.report(SeverityWarning, CodeInvalidValue, "CMC", "color index %d", col.Index)
	}
	return col
}

// WriteCMC writes a color for the target release, converting between index
// and truecolor forms as needed.
func (c *Cursor) WriteCMC(col Color, str *Cursor) {
	if !c.Variant().Truecolor {
		col.Downconvert()
		c.WriteBS(col.Index)
		return
	}
	col.Upconvert()
	var flag uint8
	if !EmptyT(col.Name) {
		flag |= ColorFlagName
	}
	if !EmptyT(col.BookName) {
		flag |= ColorFlagBook
	}
	c.WriteBS(col.Index)
	c.WriteBL(col.RGB)
	c.WriteRC(flag)
	if str == nil {
		str = c
	}
	if flag&ColorFlagName != 0 {
		str.WriteT(col.Name)
	}
	if flag&ColorFlagBook != 0 {
		str.WriteT(col.BookName)
	}
}

// Entity color flags, stored in the high byte of the ENC index.
const (
	encRGB   = 0x80
	encBook  = 0x40
	encAlpha = 0x20
)

// ReadENC reads an entity color. From R2004 the high bits of the index
// announce an rgb value, a book color handle (read from hdl, or c when
// nil) and a transparency.
func (c *Cursor) ReadENC(hdl *Cursor) (Color, error) {
	v := c.ReadBS()
	if !c.SourceVariant().Truecolor {
		return Color{Index: v}, nil
	}
	flags := v >> 8
	col := Color{Index: v & 0x1FF}
	if flags&encRGB != 0 {
		col.RGB = c.ReadBL()
	}
	if flags&encAlpha != 0 {
		col.Alpha = c.ReadBL()
	}
	if flags&encBook != 0 {
		if hdl == nil {
			hdl = c
		}
		h, err := hdl.ReadH()
		if err != nil {
			return col, err
		}
		col.Book = &h
	}
	return col, nil
}

// WriteENC writes an entity color for the target release.
func (c *Cursor) WriteENC(col Color, hdl *Cursor) {
	if !c.Variant().Truecolor {
		col.Downconvert()
		c.WriteBS(col.Index)
		return
	}
	var flags uint16
	if col.Method() == ColorRGB {
		flags |= encRGB
	}
	if col.Alpha != 0 {
		flags |= encAlpha
	}
	if col.Book != nil {
		flags |= encBook
	}
	c.WriteBS(flags<<8 | col.Index&0x1FF)
	if flags&encRGB != 0 {
		c.WriteBL(col.RGB)
	}
	if flags&encAlpha != 0 {
		c.WriteBL(col.Alpha)
	}
	if flags&encBook != 0 {
		if hdl == nil {
			hdl = c
		}
		hdl.WriteH(col.Book)
	}
}

// palette is the 256-entry AutoCAD color index table. Entries 10..249 are 24
// hues in 15 degree steps, each at five brightness levels, full and half
// saturation; 250..255 are grays.
var palette = func() (p [256][3]uint8) {
	p[1] = [3]uint8{255, 0, 0}
	p[2] = [3]uint8{255, 255, 0}
	p[3] = [3]uint8{0, 255, 0}
	p[4] = [3]uint8{0, 255, 255}
	p[5] = [3]uint8{0, 0, 255}
	p[6] = [3]uint8{255, 0, 255}
	p[7] = [3]uint8{255, 255, 255}
	p[8] = [3]uint8{128, 128, 128}
	p[9] = [3]uint8{192, 192, 192}

	ramp := [5]float64{0, 63, 127, 191, 255}
	levels := [5]float64{255, 165, 127, 76, 38}
	for i := 10; i < 250; i++ {
		hue, shade := (i-10)/10, (i-10)%10
		k := hue % 4
		var rgb [3]float64
		switch hue / 4 {
		case 0:
			rgb = [3]float64{255, ramp[k], 0}
		case 1:
			rgb = [3]float64{ramp[4-k], 255, 0}
		case 2:
			rgb = [3]float64{0, 255, ramp[k]}
		case 3:
			rgb = [3]float64{0, ramp[4-k], 255}
		case 4:
			rgb = [3]float64{ramp[k], 0, 255}
		default:
			rgb = [3]float64{255, 0, ramp[4-k]}
		}
		for j, v := range rgb {
			if shade%2 == 1 {
				v = 127 + v*128/255
			}
			p[i][j] = uint8(math.Round(v * levels[shade/2] / 255))
		}
	}
	for i, g := range [6]uint8{51, 80, 105, 130, 190, 255} {
		p[250+i] = [3]uint8{g, g, g}
	}
	return p
}()

// PaletteRGB returns the components of palette entry i.
func PaletteRGB(i uint8) (r, g, b uint8) {
	e := palette[i]
	return e[0], e[1], e[2]
}

// NearestIndex returns the palette index 1..255 closest to r, g, b.
func NearestIndex(r, g, b uint8) uint16 {
	best, bestDist := 1, math.MaxInt
	for i := 1; i < 256; i++ {
		e := palette[i]
		dr := int(e[0]) - int(r)
		dg := int(e[1]) - int(g)
		db := int(e[2]) - int(b)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return uint16(best)
}
