package confloader

import "strings"

// mapProvider feeds a nested map to koanf. koanf calls Read for it.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}

// envKeyResolver maps an environment variable name (prefix removed) to a
// config key. Keys already loaded win over the plain underscore split, which
// keeps names like rate_limit intact.
type envKeyResolver struct {
	known map[string]string
}

func newEnvKeyResolver(keys []string) *envKeyResolver {
	r := &envKeyResolver{known: make(map[string]string, len(keys))}
	for _, k := range keys {
		flat := strings.ToLower(strings.ReplaceAll(k, ".", "_"))
		// Shorter keys are parents of longer ones; keep the leaf.
		if prev, ok := r.known[flat]; !ok || len(k) > len(prev) {
			r.known[flat] = k
		}
	}
	return r
}

func (r *envKeyResolver) resolve(name string) string {
	name = strings.ToLower(name)
	if k, ok := r.known[name]; ok {
		return k
	}
	return strings.ReplaceAll(name, "_", ".")
}
