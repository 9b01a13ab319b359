package svgmesh

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestShaderFor(t *testing.T) {
	tests := []struct {
		blend    Blend
		gradient bool
		want     Shader
	}{
		{BlendOpaque, false, ShaderSolidColorOpaque},
		{BlendOpaque, true, ShaderGradientColorOpaque},
		{BlendAlphaBlended, false, ShaderSolidColorAlphaBlended},
		{BlendAlphaBlended, true, ShaderGradientColorAlphaBlended},
		{BlendAdditive, true, ShaderGradientColorAdditive},
		{BlendMultiply, false, ShaderSolidColorMultiply},
	}
	for _, tt := range tests {
		got := ShaderFor(tt.blend, tt.gradient)
		if got != tt.want {
			t.Errorf("ShaderFor(%v, %v) = %v, want %v", tt.blend, tt.gradient, got, tt.want)
		}
		if got.Blend() != tt.blend || got.UsesGradient() != tt.gradient {
			t.Errorf("%v round trip = (%v, %v)", got, got.Blend(), got.UsesGradient())
		}
	}
	if Shader(99).String() != "Unknown" {
		t.Error("out of range shader should be Unknown")
	}
}

func TestNewMaterial(t *testing.T) {
	opaque := NewMaterial(ShaderSolidColorOpaque)
	if opaque.Blend != nil {
		t.Error("opaque material should not blend")
	}
	if !opaque.DepthStencil.DepthWriteEnabled {
		t.Error("opaque material should write depth")
	}
	if len(opaque.Buffers) != 2 {
		t.Errorf("solid material buffers = %d, want 2", len(opaque.Buffers))
	}

	blended := NewMaterial(ShaderGradientColorAlphaBlended)
	if blended.Blend == nil || *blended.Blend != gputypes.BlendStateAlpha() {
		t.Errorf("blend = %+v", blended.Blend)
	}
	if blended.DepthStencil.DepthWriteEnabled {
		t.Error("blended material should not write depth")
	}
	if len(blended.Buffers) != 4 {
		t.Fatalf("gradient material buffers = %d, want 4", len(blended.Buffers))
	}
	if uv2 := blended.Buffers[SlotUV2]; uv2.ArrayStride != 8 || uv2.Attributes[0].ShaderLocation != SlotUV2 {
		t.Errorf("uv2 layout = %+v", uv2)
	}
	if blended.Primitive.FrontFace != gputypes.FrontFaceCCW {
		t.Error("materials should treat counter-clockwise as front")
	}
}

func TestMaterialRegistry(t *testing.T) {
	r := NewMaterialRegistry()
	if r.Count() != len(shaderNames) {
		t.Errorf("Count = %d, want %d", r.Count(), len(shaderNames))
	}
	if r.BestName() != ShaderSolidColorOpaque.String() {
		t.Errorf("BestName = %q", r.BestName())
	}

	ms := Materials(r, []Shader{ShaderGradientColorOpaque, ShaderGradientColorAlphaBlended})
	if len(ms) != 2 || ms[0].Shader != ShaderGradientColorOpaque || ms[1].Shader != ShaderGradientColorAlphaBlended {
		t.Errorf("Materials = %+v", ms)
	}

	r.Unregister(ShaderSolidColorMultiply.String())
	if ms := Materials(r, []Shader{ShaderSolidColorMultiply}); len(ms) != 0 {
		t.Error("unregistered shader should be skipped")
	}
}
