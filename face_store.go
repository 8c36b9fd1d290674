package planet

import "sort"

// projectedTriangle is a triangle already in screen space, waiting to be
// painted.
type projectedTriangle struct {
	vertices [3]ScreenVertex
	depth    float64
	outline  bool
}

type faceStore struct {
	faces []projectedTriangle
}

func (fs *faceStore) reset() {
	fs.faces = fs.faces[:0]
}

func (fs *faceStore) addFace(t projectedTriangle) {
	fs.faces = append(fs.faces, t)
}

func (fs *faceStore) faceCount() int {
	return len(fs.faces)
}

// sortByDepth puts the faces farther from the camera first. Equal depths
// keep their insertion order so frames are stable.
func (fs *faceStore) sortByDepth() {
	sort.SliceStable(fs.faces, func(i, j int) bool {
		return fs.faces[i].depth > fs.faces[j].depth
	})
}
