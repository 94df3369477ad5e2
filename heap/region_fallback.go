//go:build !unix

package heap

// mapAnon falls back to an ordinary slice on platforms without anonymous
// mappings wired up.
func mapAnon(size int) ([]byte, func() error, error) {
	return make([]byte, size), nil, nil
}
