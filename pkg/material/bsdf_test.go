package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
)

// fixedSampler returns the same values every call
type fixedSampler struct {
	value core.Vec2
}

func (f fixedSampler) Get1D() float32    { return f.value.X() }
func (f fixedSampler) Get2D() core.Vec2 { return f.value }

func TestNewDiffuse_Validation(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name    string
		albedo  core.Colour
		wantErr bool
	}{
		{"Grey 0.3 accepted", core.NewColour(0.3, 0.3, 0.3), false},
		{"Black accepted", core.NewColour(0, 0, 0), false},
		{"Single full channel accepted", core.NewColour(1, 0, 0), false},
		{"Grey 0.5 sums above one", core.NewColour(0.5, 0.5, 0.5), true},
		{"Negative component", core.NewColour(-0.1, 0.2, 0.2), true},
		{"Component above one", core.NewColour(1.5, 0, 0), true},
		{"NaN component", core.NewColour(nan, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDiffuse(tt.albedo)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for albedo %v", tt.albedo)
				}
				if !errors.Is(err, ErrInvalidAlbedo) {
					t.Errorf("Expected ErrInvalidAlbedo, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if d.Albedo != tt.albedo {
				t.Errorf("Expected albedo %v, got %v", tt.albedo, d.Albedo)
			}
		})
	}
}

func TestMirror_Sample(t *testing.T) {
	mirror := NewMirror()
	normal := core.NewVec3(0, 1, 0)
	incoming := core.NewVec3(1, -1, 0)

	sample, ok := mirror.Sample(incoming, normal, fixedSampler{})
	if !ok {
		t.Fatal("Mirror should always scatter")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if sample.Direction.Subtract(expected).Length() > 1e-6 {
		t.Errorf("Expected reflection %v, got %v", expected, sample.Direction)
	}
	if sample.Weight != core.White {
		t.Errorf("Expected unit weight, got %v", sample.Weight)
	}
	if !sample.Specular {
		t.Error("Mirror sample should be specular")
	}
	if !mirror.Emission().IsBlack() {
		t.Error("Mirror should not emit")
	}
}

func TestDiffuse_Sample(t *testing.T) {
	albedo := core.NewColour(0.2, 0.3, 0.4)
	diffuse, err := NewDiffuse(albedo)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	normal := core.NewVec3(0, 0, 1)
	sampler := core.NewRandomSampler(42, 0)

	for i := 0; i < 500; i++ {
		sample, ok := diffuse.Sample(core.NewVec3(0, 0, -1), normal, sampler)
		if !ok {
			continue
		}
		if sample.Specular {
			t.Fatal("Diffuse sample should not be specular")
		}
		if sample.Weight != albedo {
			t.Fatalf("Expected weight equal to albedo %v, got %v", albedo, sample.Weight)
		}
		if sample.Direction.Dot(normal) <= 0 {
			t.Fatalf("Direction %v not in the normal's hemisphere", sample.Direction)
		}
		if math.Abs(float64(sample.Direction.Length())-1) > 1e-5 {
			t.Fatalf("Expected unit direction, got length %f", sample.Direction.Length())
		}
	}
}

func TestDiffuse_SampleGrazingAbsorbed(t *testing.T) {
	diffuse, _ := NewDiffuse(core.NewColour(0.3, 0.3, 0.3))

	// Sample.Y == 1 maps to a direction in the tangent plane
	_, ok := diffuse.Sample(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), fixedSampler{value: core.NewVec2(0.25, 1)})
	if ok {
		t.Error("Expected tangent-plane sample to be absorbed")
	}
}

func TestEmitter(t *testing.T) {
	radiance := core.NewColour(4, 3, 2)
	emitter := NewEmitter(radiance)

	if emitter.Emission() != radiance {
		t.Errorf("Expected emission %v, got %v", radiance, emitter.Emission())
	}
	if _, ok := emitter.Sample(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), fixedSampler{}); ok {
		t.Error("Emitter must not scatter")
	}
	if !IsEmitter(emitter) || IsEmitter(NewMirror()) {
		t.Error("IsEmitter misclassified a material")
	}
}

func TestTag(t *testing.T) {
	diffuse, _ := NewDiffuse(core.NewColour(0.1, 0.1, 0.1))

	tests := []struct {
		bsdf BSDF
		want byte
	}{
		{NewMirror(), TagMirror},
		{diffuse, TagDiffuse},
		{NewEmitter(core.White), TagEmitter},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := Tag(tt.bsdf); got != tt.want {
			t.Errorf("Tag(%T) = %d, want %d", tt.bsdf, got, tt.want)
		}
	}
}
