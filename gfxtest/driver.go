// Package gfxtest provides an in-memory gfx.Driver and recording
// collaborators for tests that have no graphics context.
//
// The driver understands just enough GLSL to be useful: a stage fails to
// compile if it contains an #error directive, and a program fails to link if
// the fragment stage reads an `in` variable that the vertex stage does not
// write with the same type. Uniforms and vertex inputs are discovered from
// their declarations.
package gfxtest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-theft-auto/gfx"
)

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

type shader struct {
	typ      gfx.ShaderType
	source   string
	compiled bool
	log      string
}

type program struct {
	attached   []uint32
	linked     bool
	log        string
	uniforms   map[string]int32
	attributes map[string]int32
	values     map[int32]any
}

// Driver is a fake graphics context. The zero value is not usable; call
// NewDriver.
type Driver struct {
	next    uint32
	shaders map[uint32]*shader
	progs   map[uint32]*program
	buffers map[uint32][]byte
	usage   map[uint32]gfx.Usage
	bound   map[gfx.BufferTarget]uint32
	current uint32

	// MaxAttribs is returned for gfx.MaxVertexAttribs.
	MaxAttribs int32

	// Calls records every call made since the last ResetCalls.
	Calls []Call
}

// NewDriver returns an empty fake context.
func NewDriver() *Driver {
	return &Driver{
		next:       1,
		shaders:    make(map[uint32]*shader),
		progs:      make(map[uint32]*program),
		buffers:    make(map[uint32][]byte),
		usage:      make(map[uint32]gfx.Usage),
		bound:      make(map[gfx.BufferTarget]uint32),
		MaxAttribs: 16,
	}
}

func (d *Driver) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Driver) alloc() uint32 {
	h := d.next
	d.next++
	return h
}

// ResetCalls clears the call log.
func (d *Driver) ResetCalls() { d.Calls = nil }

// CallNames returns the names of the recorded calls in order.
func (d *Driver) CallNames() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named call was recorded.
func (d *Driver) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Driver) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Driver) LivePrograms() int { return len(d.progs) }

// LiveBuffers returns the number of buffer objects not yet deleted.
func (d *Driver) LiveBuffers() int { return len(d.buffers) }

// Bound returns the buffer bound to target.
func (d *Driver) Bound(target gfx.BufferTarget) uint32 { return d.bound[target] }

// CurrentProgram returns the program passed to the last UseProgram call.
func (d *Driver) CurrentProgram() uint32 { return d.current }

// BufferContents returns the stored bytes of buffer and whether it exists.
func (d *Driver) BufferContents(buffer uint32) ([]byte, bool) {
	b, ok := d.buffers[buffer]
	return b, ok
}

// BufferUsage returns the usage hint of the last upload to buffer.
func (d *Driver) BufferUsage(buffer uint32) gfx.Usage { return d.usage[buffer] }

// Uniform returns the last value uploaded to the named uniform of prog.
func (d *Driver) Uniform(prog uint32, name string) (any, bool) {
	p, ok := d.progs[prog]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

func (d *Driver) CreateShader(typ gfx.ShaderType) uint32 {
	h := d.alloc()
	d.shaders[h] = &shader{typ: typ}
	d.record("CreateShader", typ)
	return h
}

func (d *Driver) ShaderSource(s uint32, src string) {
	d.record("ShaderSource", s)
	if sh, ok := d.shaders[s]; ok {
		sh.source = src
	}
}

var errorDirective = regexp.MustCompile(`(?m)^\s*#error\b(.*)$`)

func (d *Driver) CompileShader(s uint32) {
	d.record("CompileShader", s)
	sh, ok := d.shaders[s]
	if !ok {
		return
	}
	if m := errorDirective.FindStringSubmatchIndex(sh.source); m != nil {
		line := strings.Count(sh.source[:m[0]], "\n") + 1
		msg := strings.TrimSpace(sh.source[m[2]:m[3]])
		sh.log = fmt.Sprintf("ERROR: 0:%d: '#error' : %s\n", line, msg)
		sh.compiled = false
		return
	}
	sh.compiled = true
	sh.log = ""
}

func (d *Driver) GetShaderi(s uint32, pname gfx.Enum) int32 {
	d.record("GetShaderi", s, pname)
	sh, ok := d.shaders[s]
	if !ok {
		return 0
	}
	switch pname {
	case gfx.CompileStatus:
		if sh.compiled {
			return gfx.True
		}
		return gfx.False
	case gfx.InfoLogLength:
		if sh.log == "" {
			return 0
		}
		return int32(len(sh.log) + 1)
	}
	return 0
}

func (d *Driver) GetShaderInfoLog(s uint32) string {
	d.record("GetShaderInfoLog", s)
	if sh, ok := d.shaders[s]; ok {
		return sh.log
	}
	return ""
}

func (d *Driver) DeleteShader(s uint32) {
	d.record("DeleteShader", s)
	delete(d.shaders, s)
}

func (d *Driver) CreateProgram() uint32 {
	h := d.alloc()
	d.progs[h] = &program{}
	d.record("CreateProgram")
	return h
}

func (d *Driver) AttachShader(p, s uint32) {
	d.record("AttachShader", p, s)
	if pr, ok := d.progs[p]; ok {
		pr.attached = append(pr.attached, s)
	}
}

func (d *Driver) DetachShader(p, s uint32) {
	d.record("DetachShader", p, s)
	if pr, ok := d.progs[p]; ok {
		pr.attached = slices.DeleteFunc(pr.attached, func(h uint32) bool { return h == s })
	}
}

var declaration = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:flat\s+|smooth\s+|noperspective\s+)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

type decl struct {
	qualifier, typ, name string
}

func declarations(src string) []decl {
	var out []decl
	for _, m := range declaration.FindAllStringSubmatch(src, -1) {
		out = append(out, decl{qualifier: m[1], typ: m[2], name: m[3]})
	}
	return out
}

func (d *Driver) LinkProgram(p uint32) {
	d.record("LinkProgram", p)
	pr, ok := d.progs[p]
	if !ok {
		return
	}
	pr.linked = false
	pr.uniforms = make(map[string]int32)
	pr.attributes = make(map[string]int32)
	pr.values = make(map[int32]any)

	var vert, frag *shader
	for _, h := range pr.attached {
		sh := d.shaders[h]
		if sh == nil || !sh.compiled {
			pr.log = "ERROR: one or more attached shaders not successfully compiled\n"
			return
		}
		switch sh.typ {
		case gfx.VertexShader:
			vert = sh
		case gfx.FragmentShader:
			frag = sh
		}
	}
	if vert == nil || frag == nil {
		pr.log = "ERROR: program requires a vertex and a fragment shader\n"
		return
	}

	outputs := make(map[string]string)
	var uniforms []string
	var attributes []string
	for _, dc := range declarations(vert.source) {
		switch dc.qualifier {
		case "out":
			outputs[dc.name] = dc.typ
		case "in":
			attributes = append(attributes, dc.name)
		case "uniform":
			uniforms = append(uniforms, dc.name)
		}
	}
	for _, dc := range declarations(frag.source) {
		switch dc.qualifier {
		case "in":
			typ, ok := outputs[dc.name]
			if !ok {
				pr.log = fmt.Sprintf("ERROR: Input of fragment shader '%s' not written by vertex shader\n", dc.name)
				return
			}
			if typ != dc.typ {
				pr.log = fmt.Sprintf("ERROR: Type mismatch between '%s' output of vertex shader (%s) and input of fragment shader (%s)\n", dc.name, typ, dc.typ)
				return
			}
		case "uniform":
			if !slices.Contains(uniforms, dc.name) {
				uniforms = append(uniforms, dc.name)
			}
		}
	}

	slices.Sort(uniforms)
	for i, name := range uniforms {
		pr.uniforms[name] = int32(i)
	}
	for i, name := range attributes {
		pr.attributes[name] = int32(i)
	}
	pr.linked = true
	pr.log = ""
}

func (d *Driver) GetProgrami(p uint32, pname gfx.Enum) int32 {
	d.record("GetProgrami", p, pname)
	pr, ok := d.progs[p]
	if !ok {
		return 0
	}
	switch pname {
	case gfx.LinkStatus:
		if pr.linked {
			return gfx.True
		}
		return gfx.False
	case gfx.InfoLogLength:
		if pr.log == "" {
			return 0
		}
		return int32(len(pr.log) + 1)
	}
	return 0
}

func (d *Driver) GetProgramInfoLog(p uint32) string {
	d.record("GetProgramInfoLog", p)
	if pr, ok := d.progs[p]; ok {
		return pr.log
	}
	return ""
}

func (d *Driver) DeleteProgram(p uint32) {
	d.record("DeleteProgram", p)
	delete(d.progs, p)
	if d.current == p {
		d.current = 0
	}
}

func (d *Driver) UseProgram(p uint32) {
	d.record("UseProgram", p)
	d.current = p
}

func (d *Driver) GetAttribLocation(p uint32, name string) int32 {
	d.record("GetAttribLocation", p, name)
	pr, ok := d.progs[p]
	if !ok || !pr.linked {
		return -1
	}
	if loc, ok := pr.attributes[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) GetUniformLocation(p uint32, name string) int32 {
	d.record("GetUniformLocation", p, name)
	pr, ok := d.progs[p]
	if !ok || !pr.linked {
		return -1
	}
	if loc, ok := pr.uniforms[name]; ok {
		return loc
	}
	return -1
}

// setUniform stores v on the current program, as GL does. Location -1 is
// silently ignored.
func (d *Driver) setUniform(loc int32, v any) {
	if loc < 0 {
		return
	}
	if pr, ok := d.progs[d.current]; ok && pr.linked {
		pr.values[loc] = v
	}
}

func (d *Driver) Uniform1i(loc int32, v int32) {
	d.record("Uniform1i", loc, v)
	d.setUniform(loc, v)
}

func (d *Driver) Uniform3f(loc int32, x, y, z float32) {
	d.record("Uniform3f", loc, x, y, z)
	d.setUniform(loc, [3]float32{x, y, z})
}

// UniformMatrix4fv stores the matrix in column-major order, transposing
// when asked to.
func (d *Driver) UniformMatrix4fv(loc int32, transpose bool, m [16]float32) {
	d.record("UniformMatrix4fv", loc, transpose)
	if transpose {
		var t [16]float32
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				t[c*4+r] = m[r*4+c]
			}
		}
		m = t
	}
	d.setUniform(loc, m)
}

func (d *Driver) CreateBuffer() uint32 {
	h := d.alloc()
	d.buffers[h] = nil
	d.record("CreateBuffer")
	return h
}

func (d *Driver) BindBuffer(target gfx.BufferTarget, b uint32) {
	d.record("BindBuffer", target, b)
	d.bound[target] = b
}

func (d *Driver) BufferData(target gfx.BufferTarget, data []byte, usage gfx.Usage) {
	d.record("BufferData", target, len(data), usage)
	b := d.bound[target]
	if _, ok := d.buffers[b]; !ok || b == 0 {
		return
	}
	d.buffers[b] = slices.Clone(data)
	if d.buffers[b] == nil {
		d.buffers[b] = []byte{}
	}
	d.usage[b] = usage
}

func (d *Driver) GetBufferParameteri(target gfx.BufferTarget, pname gfx.Enum) int32 {
	d.record("GetBufferParameteri", target, pname)
	if pname != gfx.BufferSize {
		return 0
	}
	return int32(len(d.buffers[d.bound[target]]))
}

func (d *Driver) GetBufferSubData(target gfx.BufferTarget, offset int, data []byte) {
	d.record("GetBufferSubData", target, offset, len(data))
	src := d.buffers[d.bound[target]]
	if offset < len(src) {
		copy(data, src[offset:])
	}
}

func (d *Driver) DeleteBuffer(b uint32) {
	d.record("DeleteBuffer", b)
	delete(d.buffers, b)
	delete(d.usage, b)
	for target, h := range d.bound {
		if h == b {
			d.bound[target] = 0
		}
	}
}

func (d *Driver) GetInteger(pname gfx.Enum) int32 {
	d.record("GetInteger", pname)
	switch pname {
	case gfx.MaxVertexAttribs:
		return d.MaxAttribs
	case gfx.CurrentProgramBinding:
		return int32(d.current)
	case gfx.ArrayBufferBinding:
		return int32(d.bound[gfx.ArrayBuffer])
	}
	return 0
}

var _ gfx.Driver = (*Driver)(nil)
