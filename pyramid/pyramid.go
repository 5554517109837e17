// SPDX-License-Identifier: MIT

package pyramid

import "github.com/katalvlaran/sgmstereo/gray"

// Pyramid is an ordered list of planes, finest first.
type Pyramid struct {
	Levels []*gray.Plane
}

// Build creates a pyramid from src. Level 0 is src itself; each further
// level is ds.Downsample of the previous one. Halving stops before a level
// would be narrower than minWidth or shorter than one pixel, so a source
// narrower than 2*minWidth yields a single level.
//
// Complexity: O(W*H) total, the level sizes form a geometric series.
func Build(src *gray.Plane, minWidth int, ds Downsampler) (*Pyramid, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if minWidth < 1 {
		return nil, ErrMinWidth
	}
	if ds == nil {
		return nil, ErrNilDownsampler
	}

	p := &Pyramid{Levels: []*gray.Plane{src}}
	cur := src
	for cur.Width/2 >= minWidth && cur.Height/2 >= 1 {
		next, err := ds.Downsample(cur)
		if err != nil {
			return nil, err
		}
		p.Levels = append(p.Levels, next)
		cur = next
	}

	return p, nil
}

// Len returns the number of levels.
func (p *Pyramid) Len() int { return len(p.Levels) }

// Level returns level i, 0 being the finest.
func (p *Pyramid) Level(i int) *gray.Plane { return p.Levels[i] }
