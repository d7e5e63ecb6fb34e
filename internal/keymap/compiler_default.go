//go:build !xkbcommon

package keymap

// DefaultCompiler returns the compiler linked into this build.
func DefaultCompiler() Compiler {
	return BuiltinCompiler{}
}
