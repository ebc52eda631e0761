// Package composite implements the two Porter-Duff operators the overlay
// needs, on premultiplied 8-bit RGBA pixels.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package composite

// div255 divides x by 255, rounding to nearest. x must be <= 255*255.
func div255(x uint16) uint16 {
	return (x + 127) / 255
}

// mulDiv255 returns a*b/255 rounded to nearest. mulDiv255(d, 255) == d,
// and a partially transparent source can take a low alpha all the way to 0.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// SourceOver composites premultiplied source over destination.
// Formula: S + D*(1-Sa)
func SourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// DestinationOut keeps the destination where the source is transparent.
// Formula: D*(1-Sa)
//
// Every output channel is <= the destination channel, so repeated
// application can only lower alpha.
func DestinationOut(sa, dr, dg, db, da byte) (r, g, b, a byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// Premultiply converts a straight color to premultiplied bytes.
func Premultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	return mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a), a
}

func addClamp(a, b byte) byte {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return byte(s)
}
