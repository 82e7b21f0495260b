package backend

// New resolves the concrete backend for the running OS. Pure dispatch: the
// platform build of newPlatformBackend allocates the variant, and the
// fallback build reports ErrUnsupportedPlatform. Selection happens exactly
// once at startup; nothing downstream branches on the OS again.
func New() (Backend, error) {
	return newPlatformBackend()
}
