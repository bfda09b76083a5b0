// Package gpu defines the table of OpenGL entry points the engine draws through.
//
// Core packages never call the GL bindings directly. They receive a Functions
// value from the application (see gpu/opengl) or from tests (see gpu/gputest).
// All calls must be made from the thread that owns the GL context.
package gpu

// GL enum values used by the engine. They mirror the OpenGL 4.1 core values.
const (
	Triangles     uint32 = 0x0004
	TriangleStrip uint32 = 0x0005

	ArrayBuffer        uint32 = 0x8892
	ElementArrayBuffer uint32 = 0x8893
	StaticDraw         uint32 = 0x88E4
	DynamicDraw        uint32 = 0x88E8

	VertexShader   uint32 = 0x8B31
	FragmentShader uint32 = 0x8B30

	Texture2D uint32 = 0x0DE1
	DepthTest uint32 = 0x0B71

	ColorBufferBit uint32 = 0x4000
	DepthBufferBit uint32 = 0x0100

	Vendor                 uint32 = 0x1F00
	Renderer               uint32 = 0x1F01
	Version                uint32 = 0x1F02
	ShadingLanguageVersion uint32 = 0x8B8C

	TextureMinFilter   uint32 = 0x2801
	TextureMagFilter   uint32 = 0x2800
	TextureWrapS       uint32 = 0x2802
	TextureWrapT       uint32 = 0x2803
	Linear             int32  = 0x2601
	LinearMipmapLinear int32  = 0x2703
	Repeat             int32  = 0x2901
)

// Functions is the subset of OpenGL the engine uses.
//
// Object handles are uint32 as in the C API; 0 is never a valid handle.
// Uniform locations are int32 and -1 means "not present in the program".
type Functions interface {
	GetString(name uint32) string
	Enable(capability uint32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)

	// Shaders and programs. ShaderStatus and ProgramStatus report the
	// compile/link result together with the info log.
	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderStatus(shader uint32) (ok bool, infoLog string)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramStatus(program uint32) (ok bool, infoLog string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m [16]float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferDataFloat32(target uint32, data []float32, usage uint32)
	BufferDataUint32(target uint32, data []uint32, usage uint32)
	BufferSubDataFloat32(target uint32, offset int, data []float32)
	DeleteBuffer(buffer uint32)
	// VertexAttribPointer describes a float attribute. stride and offset are in bytes.
	VertexAttribPointer(index uint32, size int32, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	GenTexture() uint32
	BindTexture(target, texture uint32)
	TexImage2DRGBA(target uint32, width, height int32, pixels []byte)
	TexParameteri(target, name uint32, value int32)
	GenerateMipmap(target uint32)
	DeleteTexture(texture uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32)

	// ReadPixels reads an RGBA rectangle of the current read buffer, bottom row first.
	ReadPixels(x, y, width, height int32) []byte
}
