package docpack

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes one embedded image without decoding its pixels.
type ImageInfo struct {
	Format string // "png", "jpeg", "gif", "bmp", "tiff", "webp"
	Width  int
	Height int
}

// ImageInfos returns format and dimensions for the document's embedded
// images, keyed by filename. Media in formats Go cannot decode (EMF and WMF
// vector media, for instance) are omitted.
func (c *Content) ImageInfos() (map[string]ImageInfo, error) {
	images, err := c.Images()
	if err != nil {
		return nil, err
	}
	infos := make(map[string]ImageInfo, len(images))
	for name, data := range images {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			continue
		}
		infos[name] = ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}
	}
	return infos, nil
}
