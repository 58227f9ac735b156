package gfxtest

// GLSL sources shared by tests.
const (
	VertexSource = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 Color;

uniform mat4 model;
uniform mat4 projection;

void main() {
    gl_Position = projection * model * vec4(aPos, 1.0);
    Color = aColor;
}
`

	FragmentSource = `#version 410 core
in vec3 Color;

out vec4 FragColor;

uniform vec3 tint;
uniform sampler2D albedo;

void main() {
    FragColor = texture(albedo, vec2(0.0)) * vec4(Color * tint, 1.0);
}
`

	// MismatchedFragmentSource compiles but reads Color as vec4, which the
	// vertex stage writes as vec3.
	MismatchedFragmentSource = `#version 410 core
in vec4 Color;

out vec4 FragColor;

void main() {
    FragColor = Color;
}
`

	BrokenSource = `#version 410 core
#error missing semicolon
void main() {
    gl_Position = vec4(0.0)
}
`
)

// DefaultSources maps the paths used across tests to the sources above.
func DefaultSources() Sources {
	return Sources{
		"shaders/basic.vert":      VertexSource,
		"shaders/basic.frag":      FragmentSource,
		"shaders/mismatched.frag": MismatchedFragmentSource,
		"shaders/broken.vert":     BrokenSource,
		"shaders/broken.frag":     BrokenSource,
	}
}
