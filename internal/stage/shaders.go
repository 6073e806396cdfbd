package stage

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Field vertex shader, CPU-stepped variant: opacity comes precomputed in aData.x.
const fieldCPUVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aData;

uniform mat4 uProjection;
uniform mat4 uView;
uniform vec2 uOffset;
uniform float uPointSize;

out float vOpacity;

void main() {
    vOpacity = aData.x;
    vec3 pos = aPos;
    pos.xy += uOffset;
    gl_Position = uProjection * uView * vec4(pos, 1.0);
    gl_PointSize = uPointSize;
}
` + "\x00"

// Field vertex shader, time-driven variant: aData is (phase, speed) and the
// whole motion is a pure function of uTime, so nothing is stepped on the CPU.
const fieldGPUVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aData;

uniform mat4 uProjection;
uniform mat4 uView;
uniform vec2 uOffset;
uniform float uPointSize;
uniform float uTime;

out float vOpacity;

void main() {
    float phase = aData.x;
    float speed = aData.y;
    vOpacity = 0.35 + 0.25 * sin(uTime * speed + phase);
    vec3 pos = aPos;
    pos.xy += vec2(sin(uTime * speed * 0.5 + phase), cos(uTime * speed * 0.4 + phase * 1.7)) * 0.15;
    pos.xy += uOffset;
    gl_Position = uProjection * uView * vec4(pos, 1.0);
    gl_PointSize = uPointSize;
}
` + "\x00"

// Field fragment shader: soft white disc.
const fieldFragSrc = `#version 410 core

in float vOpacity;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5));
    if (dist > 0.5) discard;
    FragColor = vec4(1.0, 1.0, 1.0, vOpacity);
}
` + "\x00"

// Portrait vertex shader: displaced points already in image units.
const portraitVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec4 aColor;

uniform mat4 uProjection;
uniform float uPointSize;
uniform float uFade;

out vec4 vColor;

void main() {
    vColor = vec4(aColor.rgb, aColor.a * uFade);
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
    gl_PointSize = uPointSize;
}
` + "\x00"

const portraitFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    if (vColor.a < 0.01) discard;
    FragColor = vColor;
}
` + "\x00"

// Column vertex shader: a unit box per instance, stretched to the blend of
// the normal and inverted heights and resting on y = 0.
const columnVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 iPos;
layout(location = 3) in vec3 iColor;
layout(location = 4) in float iNormalHeight;
layout(location = 5) in float iInvertedHeight;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;
uniform float uTransition;
uniform float uInversion;

out vec3 vColor;
out vec3 vNormal;

void main() {
    vColor = iColor;
    vNormal = normalize(mat3(uModel) * aNormal);

    float height = mix(iNormalHeight, iInvertedHeight, uInversion) * uTransition;
    vec3 pos = aPos;
    pos.y = (pos.y + 0.5) * max(height, 0.01);
    pos.x += iPos.x;
    pos.z += iPos.y;

    gl_Position = uProjection * uView * uModel * vec4(pos, 1.0);
}
` + "\x00"

const columnFragSrc = `#version 410 core

in vec3 vColor;
in vec3 vNormal;
out vec4 FragColor;

void main() {
    vec3 light = normalize(vec3(0.5, 1.0, 0.5));
    float diffuse = max(dot(normalize(vNormal), light), 0.0);
    float brightness = 0.4 + diffuse * 0.6;
    FragColor = vec4(vColor * brightness, 1.0);
}
` + "\x00"

// Backdrop: full-screen quad in NDC with a flat colour.
const backdropVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const backdropFragSrc = `#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
    FragColor = uColor;
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
