// Package execrun runs OS utilities and captures their output.
//
// It is the only place the repository shells out. Callers receive the raw
// stdout, stderr, and exit status; deciding whether a non-zero exit is fatal
// is left to them because the network utilities it drives report benign
// conditions ("already associated") through failing exit codes.
package execrun
