package renderer

import "github.com/Carmen-Shannon/spine-go/spine"

// BuildVertices adapts one batch's parallel attribute slices into the GPU
// vertex layout. Vertex i of the result is built from element i of each input
// slice, so the output order matches the batch's index space exactly.
//
// The destination slice is reused when its capacity allows; callers pass
// dst[:0] of a scratch slice to keep the per-frame allocation at zero once the
// scratch has grown to the skeleton's largest batch.
//
// Parameters:
//   - batch: the renderable batch to adapt
//   - dst: destination slice, appended to from length zero
//
// Returns:
//   - []Vertex: dst extended with one Vertex per batch vertex
func BuildVertices(batch spine.RenderableBatch, dst []Vertex) []Vertex {
	for i := range batch.Vertices {
		dst = append(dst, Vertex{
			Position:  batch.Vertices[i],
			UV:        batch.UVs[i],
			Color:     batch.Colors[i],
			DarkColor: batch.DarkColors[i],
		})
	}
	return dst
}
