package chat

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// Logos holds the two page logos, base64-encoded for inline embedding.
type Logos struct {
	Ollama  string
	Minimax string
}

// LoadLogos reads the logo images from dir. A missing or unreadable
// file is a fatal startup condition for the server; there is no
// degraded mode without the images.
func LoadLogos(dir string) (Logos, error) {
	ollama, err := readLogo(filepath.Join(dir, "ollama.png"))
	if err != nil {
		return Logos{}, err
	}
	minimax, err := readLogo(filepath.Join(dir, "minimax.png"))
	if err != nil {
		return Logos{}, err
	}
	return Logos{Ollama: ollama, Minimax: minimax}, nil
}

func readLogo(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read logo %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
