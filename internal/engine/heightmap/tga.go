package heightmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTypeTrueColor    = 2
	tgaTypeGray         = 3
	tgaTypeTrueColorRLE = 10
	tgaTypeGrayRLE      = 11
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// decodeTGA decodes uncompressed and RLE true-color or grayscale TGA data.
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	gray := imageType == tgaTypeGray || imageType == tgaTypeGrayRLE
	rle := imageType == tgaTypeTrueColorRLE || imageType == tgaTypeGrayRLE
	switch {
	case gray && bpp != 8:
		return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
	case !gray && imageType != tgaTypeTrueColor && imageType != tgaTypeTrueColorRLE:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image")
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	var err error
	if rle {
		err = d.readRLE(data[offset:])
	} else {
		err = d.readRaw(data[offset:])
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	width       int
	height      int
	bpp         int
	topToBottom bool
	next        int
}

func (d *tgaDecoder) pixel(p []byte) color.RGBA {
	if d.bpp == 1 {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c
}

// put stores c at the next pixel in file order.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.next % d.width
	y := d.next / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.next++
}

func (d *tgaDecoder) readRaw(data []byte) error {
	total := d.width * d.height
	if len(data) < total*d.bpp {
		return errTGATruncated
	}
	for i := 0; i < total; i++ {
		d.put(d.pixel(data[i*d.bpp:]))
	}
	return nil
}

func (d *tgaDecoder) readRLE(data []byte) error {
	total := d.width * d.height
	i := 0
	for d.next < total {
		if i >= len(data) {
			return errTGATruncated
		}
		packet := data[i]
		i++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if i+d.bpp > len(data) {
				return errTGATruncated
			}
			c := d.pixel(data[i:])
			i += d.bpp
			for n := 0; n < count && d.next < total; n++ {
				d.put(c)
			}
			continue
		}

		for n := 0; n < count && d.next < total; n++ {
			if i+d.bpp > len(data) {
				return errTGATruncated
			}
			d.put(d.pixel(data[i:]))
			i += d.bpp
		}
	}
	return nil
}
