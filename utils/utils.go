package utils

import (
	"bytes"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strconv"

	"github.com/nfnt/resize"
)

var ErrNotAnImage = errors.New("not a supported image (gif, jpeg or png)")

// Sha512String hashes and encodes in hex the result
func Sha512String(s string) string {
	hash := sha512.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}

func RandSalt(saltSize int) string {
	b := make([]byte, saltSize)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

type ImageConverted struct {
	Size int64
	NewX uint16
	NewY uint16
	OldX uint16
	OldY uint16
}

// ConvertImage decodes a gif/jpeg/png image, shrinks it so that neither side
// exceeds maxSize and writes it out as JPEG
func ConvertImage(maxSize uint, reader io.Reader, writer io.Writer) (result ImageConverted, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return result, ErrNotAnImage
	}
	imageRect := img.Bounds().Size()
	result.OldX = uint16(imageRect.X)
	result.OldY = uint16(imageRect.Y)

	if uint(imageRect.X) > maxSize || uint(imageRect.Y) > maxSize {
		img = resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
	}
	var newBuf bytes.Buffer
	if err = jpeg.Encode(&newBuf, img, &jpeg.Options{Quality: 90}); err != nil {
		return
	}
	imageRect = img.Bounds().Size()
	result.NewX = uint16(imageRect.X)
	result.NewY = uint16(imageRect.Y)

	result.Size, err = io.Copy(writer, &newBuf)
	return
}

// PageNumber parses a page query parameter, anything invalid means the first page
func PageNumber(in string) int {
	i, err := strconv.Atoi(in)
	if err != nil {
		return 1
	}
	return i
}
