package geometry

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent keeps degenerate query boxes valid for the R-tree.
const minExtent = 1e-9

type segmentEntry struct {
	segment WallSegment
	bbox    rtreego.Rect
}

func (e *segmentEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// SegmentIndex answers region queries over a fixed set of wall segments.
type SegmentIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSegmentIndex builds an index over segments. Segments with an empty
// footprint are skipped.
func NewSegmentIndex(segments []WallSegment) *SegmentIndex {
	tree := rtreego.NewTree(2, 25, 50)
	size := 0
	for _, s := range segments {
		rect, err := toRect(s.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&segmentEntry{segment: s, bbox: rect})
		size++
	}
	return &SegmentIndex{tree: tree, size: size}
}

// Len returns the number of indexed segments.
func (si *SegmentIndex) Len() int {
	return si.size
}

// QueryRegion returns the segments whose footprint intersects b.
func (si *SegmentIndex) QueryRegion(b orb.Bound) []WallSegment {
	rect, err := toRect(b)
	if err != nil {
		return []WallSegment{}
	}

	results := si.tree.SearchIntersect(rect)
	segments := make([]WallSegment, 0, len(results))
	for _, item := range results {
		segments = append(segments, item.(*segmentEntry).segment)
	}
	return segments
}

// Near returns the segments within radius of p.
func (si *SegmentIndex) Near(p Vec, radius float64) []WallSegment {
	return si.QueryRegion(orb.Bound{Min: p.Point(), Max: p.Point()}.Pad(radius))
}

func toRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{max(b.Max.X()-b.Min.X(), minExtent), max(b.Max.Y()-b.Min.Y(), minExtent)},
	)
}
