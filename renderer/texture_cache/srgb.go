package texture_cache

import "math"

// correctPremultipliedSRGB rewrites RGBA pixels that were premultiplied in
// sRGB space so the premultiplication holds in linear space instead. Required
// only when such pixels are sampled through an sRGB texture format, where the
// hardware's sRGB-to-linear conversion would otherwise break the
// premultiplication. Operates in place.
func correctPremultipliedSRGB(pixels []byte) {
	for i := 0; i+3 < len(pixels); i += 4 {
		a := float64(pixels[i+3]) / 255.0
		r := float64(pixels[i]) / 255.0
		g := float64(pixels[i+1]) / 255.0
		b := float64(pixels[i+2]) / 255.0

		// Undo the sRGB-space premultiplication.
		if a != 0 {
			r /= a
			g /= a
			b /= a
		} else {
			r, g, b = 0, 0, 0
		}

		// Redo it in linear space.
		r = linearToSRGB(srgbToLinear(r) * a)
		g = linearToSRGB(srgbToLinear(g) * a)
		b = linearToSRGB(srgbToLinear(b) * a)

		pixels[i] = byte(math.Round(r * 255.0))
		pixels[i+1] = byte(math.Round(g * 255.0))
		pixels[i+2] = byte(math.Round(b * 255.0))
	}
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}
