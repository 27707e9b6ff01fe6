package scene

import (
	"sort"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/geometry"
)

// Leaf threshold: if we have this many or fewer faces, store them in a leaf node
const leafThreshold = 8

// bvhNode is a node of the face hierarchy. Leaves hold face indices in
// ascending order; internal nodes hold two children.
type bvhNode struct {
	bounds      geometry.AABB
	left, right *bvhNode
	faces       []int
}

// bvh is a bounding volume hierarchy over the faces of a scene
type bvh struct {
	faces []geometry.Face
	root  *bvhNode
}

// newBVH builds the hierarchy with a median split along the longest axis
func newBVH(faces []geometry.Face) *bvh {
	if len(faces) == 0 {
		return &bvh{faces: faces}
	}

	indices := make([]int, len(faces))
	bounds := make([]geometry.AABB, len(faces))
	for i := range faces {
		indices[i] = i
		bounds[i] = faces[i].Bounds()
	}
	return &bvh{faces: faces, root: buildNode(indices, bounds)}
}

func buildNode(indices []int, bounds []geometry.AABB) *bvhNode {
	box := bounds[indices[0]]
	for _, i := range indices[1:] {
		box = box.Union(bounds[i])
	}

	if len(indices) <= leafThreshold {
		leaf := append([]int(nil), indices...)
		sort.Ints(leaf)
		return &bvhNode{bounds: box, faces: leaf}
	}

	axis := box.LongestAxis()
	sort.SliceStable(indices, func(a, b int) bool {
		return bounds[indices[a]].Center()[axis] < bounds[indices[b]].Center()[axis]
	})

	mid := len(indices) / 2
	return &bvhNode{
		bounds: box,
		left:   buildNode(indices[:mid], bounds),
		right:  buildNode(indices[mid:], bounds),
	}
}

// nearer reports whether hit should replace best. Hits within TieEpsilon of
// each other go to the lower face index, as in a front-to-back linear scan.
func nearer(hit, best geometry.Hit) bool {
	if hit.T < best.T-TieEpsilon {
		return true
	}
	return hit.T <= best.T+TieEpsilon && hit.Face < best.Face
}

// hit returns the nearest hit in the hierarchy
func (b *bvh) hit(ray core.Ray) (geometry.Hit, bool) {
	var closest geometry.Hit
	if b.root == nil {
		return closest, false
	}
	found := b.hitNode(b.root, ray, &closest, false)
	return closest, found
}

func (b *bvh) hitNode(node *bvhNode, ray core.Ray, closest *geometry.Hit, found bool) bool {
	// Keep searching slightly past the best hit so near-ties are seen
	tMax := ray.TMax
	if found {
		tMax = min(tMax, closest.T+TieEpsilon)
	}
	if !node.bounds.Hit(ray, ray.TMin, tMax) {
		return found
	}

	if node.faces == nil {
		found = b.hitNode(node.left, ray, closest, found)
		return b.hitNode(node.right, ray, closest, found)
	}

	for _, i := range node.faces {
		hit, ok := b.faces[i].Hit(ray)
		if !ok {
			continue
		}
		hit.Face = i
		if !found || nearer(hit, *closest) {
			*closest = hit
			found = true
		}
	}
	return found
}

// depth returns the number of levels in the hierarchy
func (b *bvh) depth() int {
	var walk func(n *bvhNode) int
	walk = func(n *bvhNode) int {
		if n == nil {
			return 0
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	return walk(b.root)
}
