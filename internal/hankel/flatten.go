package hankel

import (
	"github.com/born-ml/hankel/internal/tensor"
)

// Flatten reshapes a (channel..., spatial..., batch...) tensor into
// (prod(channel), spatial..., prod(batch)), the layout the contractions take.
// It also returns the batch shape so the result can be undone with Unflatten.
//
// The result shares storage with t. Merging adjacent row-major axes never
// reorders elements, so no copy is needed.
func Flatten(t *tensor.RawTensor, channelSize tensor.Shape, spatialRank int) (*tensor.RawTensor, tensor.Shape, error) {
	const op = "flatten"

	shape := t.Shape()
	nc := len(channelSize)
	if spatialRank < 1 || len(shape) < nc+spatialRank {
		return nil, nil, shapeErr(op, nil, shape,
			"rank %d cannot hold %d channel axes and %d spatial axes", len(shape), nc, spatialRank)
	}
	if !shape[:nc].Equal(channelSize) {
		return nil, nil, shapeErr(op, channelSize, shape[:nc], "channel axes disagree")
	}

	batch := shape[nc+spatialRank:].Clone()
	flat := tensor.Concat(
		tensor.Shape{channelSize.NumElements()},
		shape[nc:nc+spatialRank],
		tensor.Shape{batch.NumElements()},
	)

	out, err := t.Reshape(flat)
	if err != nil {
		return nil, nil, shapeErr(op, nil, shape, "%v", err)
	}
	return out, batch, nil
}

// Unflatten is the inverse of Flatten: it splits the first axis of a
// (lead, spatial..., trail) tensor into leadSize and the last into batchSize.
// The result shares storage with t.
func Unflatten(t *tensor.RawTensor, leadSize, batchSize tensor.Shape) (*tensor.RawTensor, error) {
	const op = "unflatten"

	shape := t.Shape()
	if len(shape) < 2 {
		return nil, shapeErr(op, nil, shape, "rank must be at least 2")
	}
	if shape[0] != leadSize.NumElements() {
		return nil, shapeErr(op, leadSize, shape, "leading axis %d does not match %v", shape[0], leadSize)
	}
	if shape[len(shape)-1] != batchSize.NumElements() {
		return nil, shapeErr(op, batchSize, shape, "trailing axis %d does not match %v", shape[len(shape)-1], batchSize)
	}

	out, err := t.Reshape(tensor.Concat(leadSize, shape[1:len(shape)-1], batchSize))
	if err != nil {
		return nil, shapeErr(op, nil, shape, "%v", err)
	}
	return out, nil
}
