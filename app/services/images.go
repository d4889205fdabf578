package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/graple254/bazaa/app/models"
)

// Derived variants are bounded boxes, longest edge preserved, never
// upscaled. Encoded as 3-channel JPEG at fixed quality.
const (
	largeBox     = 1200
	mediumBox    = 600
	thumbnailBox = 300

	derivedQuality = 88

	derivedDir = "derived"
)

type ImagePipeline struct {
	mediaDir string
}

func NewImagePipeline(mediaDir string) *ImagePipeline {
	return &ImagePipeline{mediaDir: mediaDir}
}

func (p *ImagePipeline) MediaDir() string {
	return p.mediaDir
}

// SaveOriginal stores an uploaded file under subdir with a generated name
// and returns its path relative to the media dir.
func (p *ImagePipeline) SaveOriginal(subdir, filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}

	hexName, err := randomHex()
	if err != nil {
		return "", err
	}

	rel := joinRel(subdir, hexName+ext)
	abs := p.abs(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	out, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create original file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write original file: %w", err)
	}

	return rel, nil
}

// Apply enforces the derivation update rule on an image record.
// prevOriginal is the original path the record held before this save:
//   - no original on the record -> no variants, not an error
//   - original unchanged        -> no-op, existing variants stay
//   - original new or changed   -> stale variant files are deleted first,
//     then three fresh variants are derived and the paths updated
//
// A decode failure rejects the whole save; nothing has been deleted or
// written at that point.
func (p *ImagePipeline) Apply(img *models.ProductImage, prevOriginal string) error {
	if img.OriginalPath == "" {
		img.LargePath = ""
		img.MediumPath = ""
		img.ThumbnailPath = ""
		return nil
	}

	if img.OriginalPath == prevOriginal {
		return nil
	}

	src, err := imaging.Open(p.abs(img.OriginalPath))
	if err != nil {
		return fmt.Errorf("decode original %s: %w", img.OriginalPath, err)
	}

	variants := []*image.NRGBA{
		flatten(imaging.Fit(src, largeBox, largeBox, imaging.Lanczos)),
		flatten(imaging.Fit(src, mediumBox, mediumBox, imaging.Lanczos)),
		flatten(imaging.Fit(src, thumbnailBox, thumbnailBox, imaging.Lanczos)),
	}

	// Stale variants from a prior original go first, never orphaned.
	p.removeFiles(img.LargePath, img.MediumPath, img.ThumbnailPath)

	paths := make([]string, 0, len(variants))
	for _, v := range variants {
		hexName, err := randomHex()
		if err != nil {
			p.removeFiles(paths...)
			return err
		}

		bounds := v.Bounds()
		rel := joinRel(derivedDir, fmt.Sprintf("%s_%dx%d.jpg", hexName, bounds.Dx(), bounds.Dy()))
		abs := p.abs(rel)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			p.removeFiles(paths...)
			return fmt.Errorf("create derived dir: %w", err)
		}

		if err := imaging.Save(v, abs, imaging.JPEGQuality(derivedQuality)); err != nil {
			p.removeFiles(paths...)
			return fmt.Errorf("write variant %s: %w", rel, err)
		}
		paths = append(paths, rel)
	}

	img.LargePath = paths[0]
	img.MediumPath = paths[1]
	img.ThumbnailPath = paths[2]
	return nil
}

// Remove deletes the original and every derived file of an image record.
func (p *ImagePipeline) Remove(img *models.ProductImage) {
	p.removeFiles(img.OriginalPath, img.LargePath, img.MediumPath, img.ThumbnailPath)
}

func (p *ImagePipeline) abs(rel string) string {
	return filepath.Join(p.mediaDir, filepath.FromSlash(rel))
}

func (p *ImagePipeline) removeFiles(rels ...string) {
	for _, rel := range rels {
		if rel == "" {
			continue
		}
		if err := os.Remove(p.abs(rel)); err != nil && !os.IsNotExist(err) {
			log.Printf("ImagePipeline: failed to remove %s: %v", rel, err)
		}
	}
}

// flatten composites the image over a white background, normalizing any
// alpha channel away before JPEG encoding.
func flatten(img *image.NRGBA) *image.NRGBA {
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Point{}, 1.0)
}

func randomHex() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func joinRel(parts ...string) string {
	return filepath.ToSlash(filepath.Join(parts...))
}
