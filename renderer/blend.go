package renderer

import (
	"github.com/Carmen-Shannon/spine-go/spine"
	"github.com/cogentcore/webgpu/wgpu"
)

// ResolveBlendState maps a batch blend mode and alpha convention to a fixed
// wgpu blend state. The mapping is total: every (mode, premultiplied) pair
// resolves to exactly one of eight states, and unknown modes fall back to
// normal blending.
//
// Parameters:
//   - mode: the batch's blend mode
//   - premultipliedAlpha: whether the atlas texture colors are premultiplied
//
// Returns:
//   - wgpu.BlendState: the blend equation for the batch's render pipeline
func ResolveBlendState(mode spine.BlendMode, premultipliedAlpha bool) wgpu.BlendState {
	switch mode {
	case spine.BlendModeAdditive:
		if premultipliedAlpha {
			return wgpu.BlendState{
				Color: wgpu.BlendComponent{
					Operation: wgpu.BlendOperationAdd,
					SrcFactor: wgpu.BlendFactorOne,
					DstFactor: wgpu.BlendFactorOne,
				},
				Alpha: wgpu.BlendComponent{
					Operation: wgpu.BlendOperationAdd,
					SrcFactor: wgpu.BlendFactorOne,
					DstFactor: wgpu.BlendFactorOne,
				},
			}
		}
		return wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOne,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
			},
		}
	case spine.BlendModeMultiply:
		// Identical for both alpha conventions.
		return wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorDst,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		}
	case spine.BlendModeScreen:
		// Identical for both alpha conventions.
		return wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOneMinusSrc,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		}
	case spine.BlendModeNormal:
		fallthrough
	default:
		if premultipliedAlpha {
			return wgpu.BlendState{
				Color: wgpu.BlendComponent{
					Operation: wgpu.BlendOperationAdd,
					SrcFactor: wgpu.BlendFactorOne,
					DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				},
				Alpha: wgpu.BlendComponent{
					Operation: wgpu.BlendOperationAdd,
					SrcFactor: wgpu.BlendFactorOne,
					DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				},
			}
		}
		return wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		}
	}
}
