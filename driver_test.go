package gfx_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/gfx"
)

func TestEnumKindsAreDistinct(t *testing.T) {
	kinds := []reflect.Type{
		reflect.TypeOf(gfx.VertexShader),
		reflect.TypeOf(gfx.ArrayBuffer),
		reflect.TypeOf(gfx.StaticDraw),
		reflect.TypeOf(gfx.CompileStatus),
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if i != j {
				assert.False(t, a.AssignableTo(b), "%s must not be assignable to %s", a, b)
			}
		}
	}

	// The values stay the native ones.
	assert.Equal(t, uint32(0x8892), uint32(gfx.ArrayBuffer))
	assert.Equal(t, uint32(0x88e4), uint32(gfx.StaticDraw))
	assert.Equal(t, uint32(0x8b31), uint32(gfx.VertexShader))
}
