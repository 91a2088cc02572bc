// Package formats loads polygon-soup model files (Wavefront OBJ and its MTL
// material libraries) into flat attribute arrays and triangulated shapes.
package formats
