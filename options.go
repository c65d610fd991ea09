package gridlist

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Options configures a List. Use DefaultOptions as the starting point; the
// zero value turns off virtual layout and image caching.
type Options struct {
	PaddingTop    float64 // gap above the first row (default 0)
	PaddingBottom float64 // gap below the last row (default 0)

	SpacingX float64 // gap between columns (default 3)
	SpacingY float64 // gap between rows (default 3)

	// ColumnNum is the number of columns. Zero fits as many columns as the
	// view width allows.
	ColumnNum int

	// UseVirtualLayout recycles a fixed window of slots while scrolling.
	// When false one slot is created per entry.
	UseVirtualLayout bool

	// EmptyTip is drawn in the middle of the view while the list is empty.
	EmptyTip string

	// CacheImage keeps images loaded through the list's image cache until
	// the list is disposed.
	CacheImage bool
}

// DefaultOptions returns the default list options.
func DefaultOptions() Options {
	return Options{
		SpacingX:         3,
		SpacingY:         3,
		UseVirtualLayout: true,
		CacheImage:       true,
	}
}

// normalize clamps out-of-range values.
func (o *Options) normalize() {
	o.PaddingTop = max(0, o.PaddingTop)
	o.PaddingBottom = max(0, o.PaddingBottom)
	o.SpacingX = max(0, o.SpacingX)
	o.SpacingY = max(0, o.SpacingY)
	o.ColumnNum = max(0, o.ColumnNum)
}

// optionsFile mirrors Options with pointer fields so keys missing from a
// file keep their defaults.
type optionsFile struct {
	PaddingTop       *float64 `toml:"padding_top"`
	PaddingBottom    *float64 `toml:"padding_bottom"`
	SpacingX         *float64 `toml:"spacing_x"`
	SpacingY         *float64 `toml:"spacing_y"`
	ColumnNum        *int     `toml:"column_num"`
	UseVirtualLayout *bool    `toml:"use_virtual_layout"`
	EmptyTip         *string  `toml:"empty_tip"`
	CacheImage       *bool    `toml:"cache_image"`
}

// ParseOptions decodes TOML list options on top of DefaultOptions.
//
//	padding_top = 8.0
//	spacing_x = 4.0
//	column_num = 3
//	empty_tip = "Nothing here yet"
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	var f optionsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return opts, fmt.Errorf("parse options: %w", err)
	}
	if f.ColumnNum != nil && *f.ColumnNum < 0 {
		return opts, fmt.Errorf("parse options: column_num %d: %w", *f.ColumnNum, ErrInvalidColumns)
	}
	setIf(&opts.PaddingTop, f.PaddingTop)
	setIf(&opts.PaddingBottom, f.PaddingBottom)
	setIf(&opts.SpacingX, f.SpacingX)
	setIf(&opts.SpacingY, f.SpacingY)
	setIf(&opts.ColumnNum, f.ColumnNum)
	setIf(&opts.UseVirtualLayout, f.UseVirtualLayout)
	setIf(&opts.EmptyTip, f.EmptyTip)
	setIf(&opts.CacheImage, f.CacheImage)
	opts.normalize()
	return opts, nil
}

// LoadOptions reads and parses a TOML options file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultOptions(), fmt.Errorf("load options: %w", err)
	}
	return ParseOptions(data)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
