package heightmap

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder

	"github.com/Faultbox/eternal-forest/internal/logger"
)

// Load reads a height map picture from disk.
// PNG, JPEG, GIF, BMP and TIFF are detected by content; TGA by extension.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read height map: %w", err)
	}

	img, format, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode height map %s: %w", path, err)
	}

	logger.Named("heightmap").Debug("height map loaded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Width()),
		zap.Int("height", img.Height()))
	return img, nil
}

// Decode converts encoded picture bytes to heights. ext is a file extension
// hint used for formats without a magic number.
func Decode(data []byte, ext string) (*Image, string, error) {
	var (
		src    image.Image
		format string
		err    error
	)
	if strings.EqualFold(ext, ".tga") {
		src, err = decodeTGA(data)
		format = "tga"
	} else {
		src, format, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, "", err
	}

	img, err := FromImage(src)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}
