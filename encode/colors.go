package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/printer"
)

type ColorAttr int

const (
	KeyColor ColorAttr = iota
	StringColor
	NumberColor
	BoolColor
	AnchorColor
	AliasColor
	CommentColor
)

type Colors struct {
	Map map[ColorAttr]*color.Color
}

func NewColors() *Colors {
	colors := &Colors{Map: map[ColorAttr]*color.Color{
		KeyColor:     color.RGB(128, 168, 196),
		StringColor:  color.RGB(8, 196, 16),
		NumberColor:  color.RGB(128, 216, 236),
		BoolColor:    color.New(color.FgCyan),
		AnchorColor:  color.RGB(196, 168, 128),
		AliasColor:   color.RGB(196, 168, 128),
		CommentColor: color.New(color.FgBlue),
	}}
	for _, c := range colors.Map {
		c.EnableColor()
	}
	return colors
}

// Color renders s with the color for a, or s when a has no color.
func (c *Colors) Color(a ColorAttr, s string) string {
	col := c.Map[a]
	if col == nil {
		return s
	}
	return col.Sprint(s)
}

func (c *Colors) property(a ColorAttr) printer.PrintFunc {
	col := c.Map[a]
	if col == nil {
		return nil
	}
	pre, suf, _ := strings.Cut(col.Sprint("\x00"), "\x00")
	return func() *printer.Property {
		return &printer.Property{Prefix: pre, Suffix: suf}
	}
}

func (c *Colors) printer() *printer.Printer {
	return &printer.Printer{
		MapKey:  c.property(KeyColor),
		String:  c.property(StringColor),
		Number:  c.property(NumberColor),
		Bool:    c.property(BoolColor),
		Anchor:  c.property(AnchorColor),
		Alias:   c.property(AliasColor),
		Comment: c.property(CommentColor),
	}
}
