package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Rect is the bounding box of one subpath, Round marks arc-built outlines drawn as ellipses
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
	Round                  bool
}

// Center returns the middle of the box
func (r Rect) Center() (float64, float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// Outline is a shape reduced to subpath bounding boxes, terminal cells cannot show more
type Outline []Rect

// Bounds returns the union of all boxes
func (o Outline) Bounds() Rect {
	if len(o) == 0 {
		return Rect{}
	}
	b := o[0]
	for _, r := range o[1:] {
		b.MinX = math.Min(b.MinX, r.MinX)
		b.MinY = math.Min(b.MinY, r.MinY)
		b.MaxX = math.Max(b.MaxX, r.MaxX)
		b.MaxY = math.Max(b.MaxY, r.MaxY)
	}
	return b
}

// LerpOutline interpolates box by box, the shorter outline repeats its last box
// t may overshoot [0,1] under elastic easing, inverted boxes are normalized
func LerpOutline(a, b Outline, t float64) Outline {
	if len(a) == 0 {
		return append(Outline(nil), b...)
	}
	if len(b) == 0 {
		return append(Outline(nil), a...)
	}

	n := max(len(a), len(b))
	out := make(Outline, n)
	for i := range out {
		ra, rb := a[min(i, len(a)-1)], b[min(i, len(b)-1)]
		r := Rect{
			MinX:  lerp(ra.MinX, rb.MinX, t),
			MinY:  lerp(ra.MinY, rb.MinY, t),
			MaxX:  lerp(ra.MaxX, rb.MaxX, t),
			MaxY:  lerp(ra.MaxY, rb.MaxY, t),
			Round: ra.Round,
		}
		if t >= 0.5 {
			r.Round = rb.Round
		}
		if r.MinX > r.MaxX {
			r.MinX, r.MaxX = r.MaxX, r.MinX
		}
		if r.MinY > r.MaxY {
			r.MinY, r.MaxY = r.MaxY, r.MinY
		}
		out[i] = r
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ParsePath reduces an SVG path string to subpath boxes
// Supported commands: M L H V Z A in absolute and relative form, implicit repeats included
func ParsePath(d string) (Outline, error) {
	p := pathParser{tokens: tokenizePath(d)}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", d, err)
	}
	return p.out, nil
}

// MustParsePath panics on malformed input, for embedded shape tables only
func MustParsePath(d string) Outline {
	o, err := ParsePath(d)
	if err != nil {
		panic(err)
	}
	return o
}

func tokenizePath(d string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range d {
		switch {
		case unicode.IsLetter(r) && r != 'e' && r != 'E':
			flush()
			tokens = append(tokens, string(r))
		case r == ',' || unicode.IsSpace(r):
			flush()
		case r == '-' && cur.Len() > 0 && !strings.HasSuffix(cur.String(), "e"):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type pathParser struct {
	tokens []string
	pos    int

	x, y float64
	box  Rect
	open bool
	out  Outline
}

func (p *pathParser) run() error {
	var cmd byte
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if isCommand(tok) {
			cmd = tok[0]
			p.pos++
		} else if cmd == 0 {
			return fmt.Errorf("expected command, got %q", tok)
		}

		var err error
		switch cmd {
		case 'M', 'm':
			err = p.move(cmd == 'm')
			// Extra coordinate pairs after a move are implicit line-tos
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			err = p.line(cmd == 'l')
		case 'H', 'h':
			err = p.horizontal(cmd == 'h')
		case 'V', 'v':
			err = p.vertical(cmd == 'v')
		case 'A', 'a':
			err = p.arc(cmd == 'a')
		case 'Z', 'z':
			p.closeSubpath()
		default:
			return fmt.Errorf("unsupported command %q", string(cmd))
		}
		if err != nil {
			return err
		}
	}
	p.closeSubpath()
	if len(p.out) == 0 {
		return fmt.Errorf("path has no drawable segments")
	}
	return nil
}

func isCommand(tok string) bool {
	return len(tok) == 1 && unicode.IsLetter(rune(tok[0]))
}

func (p *pathParser) numbers(n int) ([]float64, error) {
	if p.pos+n > len(p.tokens) {
		return nil, fmt.Errorf("expected %d numbers at token %d", n, p.pos)
	}
	vals := make([]float64, n)
	for i := range vals {
		tok := p.tokens[p.pos+i]
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", tok, err)
		}
		vals[i] = v
	}
	p.pos += n
	return vals, nil
}

func (p *pathParser) move(relative bool) error {
	v, err := p.numbers(2)
	if err != nil {
		return err
	}
	// A move only starts a new subpath once the previous one drew something
	if p.open && (p.box.MaxX > p.box.MinX || p.box.MaxY > p.box.MinY) {
		p.closeSubpath()
	}
	if relative {
		p.x += v[0]
		p.y += v[1]
	} else {
		p.x, p.y = v[0], v[1]
	}
	p.box = Rect{MinX: p.x, MinY: p.y, MaxX: p.x, MaxY: p.y}
	p.open = true
	return nil
}

func (p *pathParser) line(relative bool) error {
	v, err := p.numbers(2)
	if err != nil {
		return err
	}
	if relative {
		p.lineTo(p.x+v[0], p.y+v[1])
	} else {
		p.lineTo(v[0], v[1])
	}
	return nil
}

func (p *pathParser) horizontal(relative bool) error {
	v, err := p.numbers(1)
	if err != nil {
		return err
	}
	x := v[0]
	if relative {
		x += p.x
	}
	p.lineTo(x, p.y)
	return nil
}

func (p *pathParser) vertical(relative bool) error {
	v, err := p.numbers(1)
	if err != nil {
		return err
	}
	y := v[0]
	if relative {
		y += p.y
	}
	p.lineTo(p.x, y)
	return nil
}

// arc bounds the endpoint plus the radius around the chord midpoint, exact for the half-circle arcs in use
func (p *pathParser) arc(relative bool) error {
	v, err := p.numbers(7)
	if err != nil {
		return err
	}
	rx, ry := math.Abs(v[0]), math.Abs(v[1])
	ex, ey := v[5], v[6]
	if relative {
		ex += p.x
		ey += p.y
	}
	cx, cy := (p.x+ex)/2, (p.y+ey)/2

	p.include(cx-rx, cy-ry)
	p.include(cx+rx, cy+ry)
	p.lineTo(ex, ey)
	p.box.Round = true
	return nil
}

func (p *pathParser) lineTo(x, y float64) {
	if !p.open {
		p.box = Rect{MinX: p.x, MinY: p.y, MaxX: p.x, MaxY: p.y}
		p.open = true
	}
	p.include(x, y)
	p.x, p.y = x, y
}

func (p *pathParser) include(x, y float64) {
	p.box.MinX = math.Min(p.box.MinX, x)
	p.box.MinY = math.Min(p.box.MinY, y)
	p.box.MaxX = math.Max(p.box.MaxX, x)
	p.box.MaxY = math.Max(p.box.MaxY, y)
}

func (p *pathParser) closeSubpath() {
	if !p.open {
		return
	}
	if p.box.MaxX > p.box.MinX || p.box.MaxY > p.box.MinY {
		p.out = append(p.out, p.box)
	}
	p.open = false
}
