// Package recipe converts recipe documents into the program payload the
// device accepts.
//
// Build is a pure function: it performs no I/O and yields byte-identical
// output for identical inputs. The default policy it applies (Roll
// agitation, Off compensation, 18/24 degree bounds, the C2 designator, the
// BW category) matches what device firmware expects and must not drift.
package recipe
