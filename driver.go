package gfx

// Enum is a graphics-API enumerant. The values below are the OpenGL ones so
// backends can pass them through unchanged.
type Enum uint32

// ShaderType selects the pipeline stage of a shader object.
type ShaderType Enum

// BufferTarget is a buffer bind slot.
type BufferTarget Enum

// Usage is the allocation hint passed with a buffer upload. The core never
// interprets it.
type Usage Enum

const (
	VertexShader   ShaderType = 0x8b31
	FragmentShader ShaderType = 0x8b30

	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893

	StreamDraw  Usage = 0x88e0
	StreamRead  Usage = 0x88e1
	StreamCopy  Usage = 0x88e2
	StaticDraw  Usage = 0x88e4
	StaticRead  Usage = 0x88e5
	StaticCopy  Usage = 0x88e6
	DynamicDraw Usage = 0x88e8
	DynamicRead Usage = 0x88e9
	DynamicCopy Usage = 0x88ea

	CompileStatus         Enum = 0x8b81
	LinkStatus            Enum = 0x8b82
	InfoLogLength         Enum = 0x8b84
	BufferSize            Enum = 0x8764
	MaxVertexAttribs      Enum = 0x8869
	CurrentProgramBinding Enum = 0x8b8d
	ArrayBufferBinding    Enum = 0x8894

	False = 0
	True  = 1
)

// Driver is the graphics context surface the core issues calls against.
// Implementations are not safe for concurrent use; every call must come from
// the thread that owns the context.
type Driver interface {
	CreateShader(typ ShaderType) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32

	Uniform1i(location int32, v int32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, transpose bool, m [16]float32)

	CreateBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, data []byte, usage Usage)
	GetBufferParameteri(target BufferTarget, pname Enum) int32
	GetBufferSubData(target BufferTarget, offset int, data []byte)
	DeleteBuffer(buffer uint32)

	GetInteger(pname Enum) int32
}
