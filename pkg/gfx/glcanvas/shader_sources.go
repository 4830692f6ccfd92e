package glcanvas

// Shader sources for the batched 2D canvas

// Vertex shader: pixel positions are already transformed by the modelview
// matrix on the CPU, only the projection is applied here
const batchVertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 projection;

out vec4 vColor;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
`

// Fragment shader: flat vertex color
const batchFragmentShaderSource = `
#version 410 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
`
