package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/typeset/linebreak"
)

// Paragraph maps a ConfigSection's assignments onto a linebreak.Paragraph,
// starting from linebreak.Default() so any field the source leaves unset
// keeps its TeX default. Unknown keys are rejected outright: a typo in a
// config block should fail to parse, not silently no-op.
func (c *ConfigSection) Paragraph() (linebreak.Paragraph, error) {
	par := linebreak.Default()
	if c == nil || c.Block == nil {
		return par, nil
	}

	for _, stmt := range c.Block.Statements {
		a := stmt.Assignment
		if a == nil {
			continue
		}
		if err := applyConfigKey(&par, a.Key, a.Value); err != nil {
			return par, fmt.Errorf("config.%s: %w", a.Key, err)
		}
	}
	return par, nil
}

func applyConfigKey(par *linebreak.Paragraph, key string, v *Value) error {
	switch key {
	case "hsize":
		f, err := valueFloat(v)
		if err != nil {
			return err
		}
		par.HSize = f
	case "tolerance":
		f, err := valueFloat(v)
		if err != nil {
			return err
		}
		par.Tolerance = f
	case "line-penalty", "linepenalty":
		i, err := valueInt64(v)
		if err != nil {
			return err
		}
		par.LinePenalty = i
	case "adj-demerits", "adjdemerits":
		i, err := valueInt64(v)
		if err != nil {
			return err
		}
		par.AdjDemerits = i
	case "line-skip-limit", "lineskiplimit":
		f, err := valueFloat(v)
		if err != nil {
			return err
		}
		par.LineSkipLimit = f
	case "hang-indent", "hangindent":
		f, err := valueFloat(v)
		if err != nil {
			return err
		}
		par.HangIndent = f
	case "hang-after", "hangafter":
		i, err := valueInt(v)
		if err != nil {
			return err
		}
		par.HangAfter = i
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func valueFloat(v *Value) (float64, error) {
	if v == nil || v.Number == nil {
		return 0, fmt.Errorf("expected a numeric value")
	}
	return strconv.ParseFloat(strings.TrimRight(*v.Number, "ptmcinexlf%"), 64)
}

func valueInt(v *Value) (int, error) {
	f, err := valueFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func valueInt64(v *Value) (int64, error) {
	f, err := valueFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
