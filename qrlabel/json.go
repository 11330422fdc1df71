package qrlabel

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON accepts a number (pixels) or a unit string ("30vw").
func (l *Length) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Length(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = Length(n.String())
	return nil
}

// UnmarshalJSON accepts [x, y] or {"x": ..., "y": ...}.
func (p *Point) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		var pair []Length
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("position takes 2 values, got %d", len(pair))
		}
		p.X, p.Y = pair[0], pair[1]
		return nil
	}
	var obj struct {
		X Length `json:"x"`
		Y Length `json:"y"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.X, p.Y = obj.X, obj.Y
	return nil
}

// UnmarshalJSON accepts a single value or an array of 1, 2 or 4 values.
func (m *Margin) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		var vals []Length
		if err := json.Unmarshal(b, &vals); err != nil {
			return err
		}
		*m = Margin(vals)
		return nil
	}
	var single Length
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}
	*m = Margin{single}
	return nil
}

// UnmarshalJSON accepts true (default border), [color, width], or
// {"color": ..., "width": ...}.
func (s *BorderSpec) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case 't', 'f':
		var enabled bool
		if err := json.Unmarshal(b, &enabled); err != nil {
			return err
		}
		if enabled {
			*s = *DefaultBorder()
		}
		return nil
	case '[':
		var pair []json.RawMessage
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("border takes [color, width], got %d values", len(pair))
		}
		if err := json.Unmarshal(pair[0], &s.Color); err != nil {
			return err
		}
		return json.Unmarshal(pair[1], &s.Width)
	default:
		var obj struct {
			Color string `json:"color"`
			Width Length `json:"width"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		s.Color, s.Width = obj.Color, obj.Width
		return nil
	}
}
