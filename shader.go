package svgmesh

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Shader identifies the program a submesh is drawn with.
type Shader int

const (
	ShaderSolidColorOpaque Shader = iota
	ShaderSolidColorAlphaBlended
	ShaderGradientColorOpaque
	ShaderGradientColorAlphaBlended
	ShaderSolidColorAdditive
	ShaderGradientColorAdditive
	ShaderSolidColorMultiply
	ShaderGradientColorMultiply
)

var shaderNames = [...]string{
	"SolidColorOpaque",
	"SolidColorAlphaBlended",
	"GradientColorOpaque",
	"GradientColorAlphaBlended",
	"SolidColorAdditive",
	"GradientColorAdditive",
	"SolidColorMultiply",
	"GradientColorMultiply",
}

// String returns the shader name.
func (s Shader) String() string {
	if s < 0 || int(s) >= len(shaderNames) {
		return "Unknown"
	}
	return shaderNames[s]
}

// UsesGradient reports whether the shader samples the gradient atlas.
func (s Shader) UsesGradient() bool {
	switch s {
	case ShaderGradientColorOpaque, ShaderGradientColorAlphaBlended,
		ShaderGradientColorAdditive, ShaderGradientColorMultiply:
		return true
	}
	return false
}

// Blend returns the blending the shader performs.
func (s Shader) Blend() Blend {
	switch s {
	case ShaderSolidColorOpaque, ShaderGradientColorOpaque:
		return BlendOpaque
	case ShaderSolidColorAdditive, ShaderGradientColorAdditive:
		return BlendAdditive
	case ShaderSolidColorMultiply, ShaderGradientColorMultiply:
		return BlendMultiply
	}
	return BlendAlphaBlended
}

// ShaderFor returns the shader drawing blend with or without gradients.
func ShaderFor(blend Blend, gradient bool) Shader {
	var s Shader
	switch blend {
	case BlendOpaque:
		s = ShaderSolidColorOpaque
	case BlendAdditive:
		s = ShaderSolidColorAdditive
	case BlendMultiply:
		s = ShaderSolidColorMultiply
	default:
		s = ShaderSolidColorAlphaBlended
	}
	if gradient {
		s = s.gradient()
	}
	return s
}

func (s Shader) gradient() Shader {
	switch s {
	case ShaderSolidColorOpaque:
		return ShaderGradientColorOpaque
	case ShaderSolidColorAlphaBlended:
		return ShaderGradientColorAlphaBlended
	case ShaderSolidColorAdditive:
		return ShaderGradientColorAdditive
	case ShaderSolidColorMultiply:
		return ShaderGradientColorMultiply
	}
	return s
}

// DepthFormat is the depth attachment format materials are built for.
const DepthFormat = gputypes.TextureFormatDepth24Plus

// Vertex buffer slots of a combined mesh. Each attribute lives in its own
// buffer, matching the CombinedMesh slices.
const (
	SlotPosition = iota
	SlotColor
	SlotUV
	SlotUV2
)

// Material is the pipeline state a shader needs.
type Material struct {
	Shader       Shader
	Blend        *gputypes.BlendState
	DepthStencil gputypes.DepthStencilState
	Primitive    gputypes.PrimitiveState
	Buffers      []gputypes.VertexBufferLayout
}

// NewMaterial builds the pipeline state for s. Opaque shaders write depth
// and do not blend; the others test depth without writing it.
func NewMaterial(s Shader) Material {
	m := Material{
		Shader:       s,
		DepthStencil: gputypes.DefaultDepthStencilState(DepthFormat),
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Buffers: vertexLayouts(s.UsesGradient()),
	}
	m.DepthStencil.DepthCompare = gputypes.CompareFunctionLessEqual

	switch s.Blend() {
	case BlendOpaque:
		m.Blend = nil
	case BlendAdditive:
		m.Blend = &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorZero,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
		m.DepthStencil.DepthWriteEnabled = false
	case BlendMultiply:
		m.Blend = &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorZero,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
		m.DepthStencil.DepthWriteEnabled = false
	default:
		b := gputypes.BlendStateAlpha()
		m.Blend = &b
		m.DepthStencil.DepthWriteEnabled = false
	}
	return m
}

func vertexLayouts(gradient bool) []gputypes.VertexBufferLayout {
	attr := func(slot int, f gputypes.VertexFormat) gputypes.VertexBufferLayout {
		return gputypes.VertexBufferLayout{
			ArrayStride: f.Size(),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: f, Offset: 0, ShaderLocation: uint32(slot)},
			},
		}
	}
	out := []gputypes.VertexBufferLayout{
		attr(SlotPosition, gputypes.VertexFormatFloat32x3),
		attr(SlotColor, gputypes.VertexFormatUnorm8x4),
	}
	if gradient {
		out = append(out,
			attr(SlotUV, gputypes.VertexFormatFloat32x2),
			attr(SlotUV2, gputypes.VertexFormatFloat32x2),
		)
	}
	return out
}

// MaterialRegistry maps shader names to material factories.
type MaterialRegistry = gpucontext.Registry[Material]

// NewMaterialRegistry returns a registry holding a material for every
// shader. Opaque solid colour is preferred when nothing else is asked for.
func NewMaterialRegistry() *MaterialRegistry {
	r := gpucontext.NewRegistry[Material](gpucontext.WithPriority(
		ShaderSolidColorOpaque.String(),
		ShaderSolidColorAlphaBlended.String(),
	))
	for i := range shaderNames {
		s := Shader(i)
		r.Register(s.String(), func() Material { return NewMaterial(s) })
	}
	return r
}

// Materials resolves shaders through r.
func Materials(r *MaterialRegistry, shaders []Shader) []Material {
	out := make([]Material, 0, len(shaders))
	for _, s := range shaders {
		if r.Has(s.String()) {
			out = append(out, r.Get(s.String()))
		}
	}
	return out
}
