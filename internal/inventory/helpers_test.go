package inventory

import "os"

func writeRawFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0o644)
}
