// Package config holds the small set of package-level constants and
// flags the inference core and its surrounding tooling share, following
// the teacher's pattern of a tiny constants package read by multiple
// layers instead of a viper/cobra-style loader (neither fits a
// side-effect-free, single-pass core, see SPEC_FULL.md AMBIENT STACK).
package config

// Version is the module version.
var Version = "0.1.0"

const SourceFileExt = ".butter"

// SourceFileExtensions are the recognized fixture-source extensions.
// cmd/inferfmt names SourceFileExt in its usage line but reads whatever
// path it is given, without checking the extension.
var SourceFileExtensions = []string{".butter", ".bt"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is a package-level test flag. No code in this module reads
// it: type display always prints variable names as they were allocated.
var IsTestMode = false

// ReturnIdent is the reserved identifier installed into the environment
// exactly inside a function body (§4.6.2, §4.6.8): looking it up gives
// the function's declared result type, and Jump(Return) unifies against
// it.
const ReturnIdent = "return"
