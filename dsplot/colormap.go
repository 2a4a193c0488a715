// SPDX-License-Identifier: MIT

package dsplot

import (
	"fmt"
	"math"
)

// Colormap assigns evenly spaced hues to keys in insertion order. Adding a
// key recolors every key so that hues stay evenly spaced.
type Colormap struct {
	keys   []string
	colors map[string]string
}

// NewColormap returns an empty colormap.
func NewColormap() *Colormap {
	return &Colormap{colors: make(map[string]string)}
}

// Add appends the keys not yet present and recolors: key i of n gets hue
// i/(n+1) at full saturation and value.
func (c *Colormap) Add(keys ...string) {
	for _, k := range keys {
		if _, ok := c.colors[k]; !ok {
			c.keys = append(c.keys, k)
			c.colors[k] = ""
		}
	}
	n := float64(len(c.keys) + 1)
	for i, k := range c.keys {
		c.colors[k] = HSVHex(float64(i)/n, 1, 1)
	}
}

// Color returns the "#rrggbb" color of key.
func (c *Colormap) Color(key string) (string, bool) {
	v, ok := c.colors[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (c *Colormap) Keys() []string { return append([]string(nil), c.keys...) }

// Len returns the number of keys.
func (c *Colormap) Len() int { return len(c.keys) }

// Legend returns the entries for keys, skipping unknown ones.
func (c *Colormap) Legend(keys []string) []LegendEntry {
	out := make([]LegendEntry, 0, len(keys))
	for _, k := range keys {
		if v, ok := c.colors[k]; ok {
			out = append(out, LegendEntry{Key: k, Color: v})
		}
	}
	return out
}

// HSVHex converts hue h ∈ [0,1), saturation s and value v to "#rrggbb".
func HSVHex(h, s, v float64) string {
	h6 := math.Mod(h, 1) * 6
	i := math.Floor(h6)
	f := h6 - i
	p, q, t := v*(1-s), v*(1-s*f), v*(1-s*(1-f))
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return fmt.Sprintf("#%02x%02x%02x", byteOf(r), byteOf(g), byteOf(b))
}

func byteOf(x float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255)) }
