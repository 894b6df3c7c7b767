package xconf

import (
	"strings"
	"testing"
)

func FuzzProfileFromBytes(f *testing.F) {
	f.Add([]byte("method: hash\nrate: 0.5\n"), "yaml")
	f.Add([]byte(`{"method":"reservoir","size":3}`), "json")
	f.Add([]byte("ratios: [0.1, 0.9]\n"), "yml")

	f.Fuzz(func(t *testing.T, data []byte, format string) {
		switch strings.ToLower(format) {
		case "yaml", "yml":
			format = string(FormatYAML)
		case "json":
			format = string(FormatJSON)
		default:
			return
		}

		p, err := ProfileFromBytes(data, Format(format))
		if err != nil {
			return
		}
		// Validate 不应 panic
		_ = p.Validate()
	})
}
