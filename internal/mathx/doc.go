// Package mathx holds the numeric helpers shared by every effect.
//
//   - [Lerp], [Clamp]: scalar interpolation and bounding
//   - [SeededRandom]: reproducible [0,1) sequence from a 32-bit seed
//   - [Bilinear]: resampling over a row-major scalar field
//
// # Portability
//
// The standalone HTML export ships [Script], a JavaScript rendition of the
// same helpers. Both must agree bit-for-bit on the random sequence, so any
// change here has to be mirrored in mathx.js.
package mathx
