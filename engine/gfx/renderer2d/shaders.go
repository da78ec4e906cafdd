package renderer2d

const DefaultVertexShader = `#version 330 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec4 aColor;
layout(location = 2) in vec4 aTint;
layout(location = 3) in vec2 aUV;
layout(location = 4) in float aTex;
layout(location = 5) in float aMode;

uniform mat4 uVP;

out vec4 vColor;
out vec4 vTint;
out vec2 vUV;
flat out int vTex;
out float vMode;

void main() {
	vColor = aColor;
	vTint = aTint;
	vUV = aUV;
	vTex = int(aTex + 0.5);
	vMode = aMode;
	gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
`

const DefaultFragmentShader = `#version 330 core
in vec4 vColor;
in vec4 vTint;
in vec2 vUV;
flat in int vTex;
in float vMode;

uniform sampler2D uTex[16];
uniform sampler2D uMask;
uniform bool uMasking;
uniform vec2 uScreen;

out vec4 FragColor;

vec4 texel(int i, vec2 uv) {
	switch (i) {
	case 0: return texture(uTex[0], uv);
	case 1: return texture(uTex[1], uv);
	case 2: return texture(uTex[2], uv);
	case 3: return texture(uTex[3], uv);
	case 4: return texture(uTex[4], uv);
	case 5: return texture(uTex[5], uv);
	case 6: return texture(uTex[6], uv);
	case 7: return texture(uTex[7], uv);
	case 8: return texture(uTex[8], uv);
	case 9: return texture(uTex[9], uv);
	case 10: return texture(uTex[10], uv);
	case 11: return texture(uTex[11], uv);
	case 12: return texture(uTex[12], uv);
	case 13: return texture(uTex[13], uv);
	case 14: return texture(uTex[14], uv);
	default: return texture(uTex[15], uv);
	}
}

void main() {
	vec4 c = texel(vTex, vUV);
	if (vMode > 0.5) {
		c = vec4(vColor.rgb, vColor.a * c.a);
	} else {
		c.rgb = clamp(c.rgb + vTint.rgb, 0.0, 1.0);
		float g = dot(c.rgb, vec3(0.299, 0.587, 0.114));
		c.rgb = mix(c.rgb, vec3(g), vTint.a);
		c *= vColor;
	}
	if (uMasking) {
		c.a *= texture(uMask, gl_FragCoord.xy / uScreen).a;
	}
	FragColor = c;
}
`
