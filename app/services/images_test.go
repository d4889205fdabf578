package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/graple254/bazaa/app/models"
)

var derivedNamePattern = regexp.MustCompile(`^derived/[0-9a-f]{32}_\d+x\d+\.jpg$`)

func newTestPipeline(t *testing.T) *ImagePipeline {
	t.Helper()
	return NewImagePipeline(t.TempDir())
}

// saveTestImage encodes a solid-color PNG of the given size and stores it
// through the pipeline, returning its relative path.
func saveTestImage(t *testing.T, p *ImagePipeline, width, height int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	rel, err := p.SaveOriginal("products", "upload.png", &buf)
	if err != nil {
		t.Fatalf("SaveOriginal: %v", err)
	}
	return rel
}

func mustExist(t *testing.T, p *ImagePipeline, rel string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(p.MediaDir(), filepath.FromSlash(rel))); err != nil {
		t.Errorf("expected %s to exist: %v", rel, err)
	}
}

func mustNotExist(t *testing.T, p *ImagePipeline, rel string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(p.MediaDir(), filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Errorf("expected %s to be gone, stat err = %v", rel, err)
	}
}

func variantSize(t *testing.T, p *ImagePipeline, rel string) (int, int) {
	t.Helper()
	img, err := imaging.Open(filepath.Join(p.MediaDir(), filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("open variant %s: %v", rel, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestApplyDerivesBoundedVariants(t *testing.T) {
	p := newTestPipeline(t)
	img := &models.ProductImage{OriginalPath: saveTestImage(t, p, 2000, 3000)}

	if err := p.Apply(img, ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, rel := range []string{img.LargePath, img.MediumPath, img.ThumbnailPath} {
		if !derivedNamePattern.MatchString(rel) {
			t.Errorf("variant path %q does not match the derived naming scheme", rel)
		}
		mustExist(t, p, rel)
	}

	// Portrait 2:3 source: the long edge hits the box, width follows.
	if w, h := variantSize(t, p, img.LargePath); w != 800 || h != 1200 {
		t.Errorf("large variant = %dx%d, want 800x1200", w, h)
	}
	if w, h := variantSize(t, p, img.MediumPath); w != 400 || h != 600 {
		t.Errorf("medium variant = %dx%d, want 400x600", w, h)
	}
	if w, h := variantSize(t, p, img.ThumbnailPath); w != 200 || h != 300 {
		t.Errorf("thumbnail variant = %dx%d, want 200x300", w, h)
	}
}

func TestApplyNeverUpscales(t *testing.T) {
	p := newTestPipeline(t)
	img := &models.ProductImage{OriginalPath: saveTestImage(t, p, 100, 50)}

	if err := p.Apply(img, ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, rel := range []string{img.LargePath, img.MediumPath, img.ThumbnailPath} {
		if w, h := variantSize(t, p, rel); w != 100 || h != 50 {
			t.Errorf("variant %s = %dx%d, want original 100x50", rel, w, h)
		}
	}
}

func TestApplyUnchangedOriginalIsNoop(t *testing.T) {
	p := newTestPipeline(t)
	img := &models.ProductImage{OriginalPath: saveTestImage(t, p, 800, 800)}

	if err := p.Apply(img, ""); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	large, medium, thumb := img.LargePath, img.MediumPath, img.ThumbnailPath

	if err := p.Apply(img, img.OriginalPath); err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	if img.LargePath != large || img.MediumPath != medium || img.ThumbnailPath != thumb {
		t.Error("unchanged original must keep the existing variants")
	}
	mustExist(t, p, large)
	mustExist(t, p, medium)
	mustExist(t, p, thumb)
}

func TestApplyReplacesStaleVariants(t *testing.T) {
	p := newTestPipeline(t)
	img := &models.ProductImage{OriginalPath: saveTestImage(t, p, 800, 800)}

	if err := p.Apply(img, ""); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	prevOriginal := img.OriginalPath
	stale := []string{img.LargePath, img.MediumPath, img.ThumbnailPath}

	img.OriginalPath = saveTestImage(t, p, 640, 480)
	if err := p.Apply(img, prevOriginal); err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	for _, rel := range stale {
		mustNotExist(t, p, rel)
	}
	for _, rel := range []string{img.LargePath, img.MediumPath, img.ThumbnailPath} {
		mustExist(t, p, rel)
	}
}

func TestApplyRejectsUndecodableOriginal(t *testing.T) {
	p := newTestPipeline(t)
	img := &models.ProductImage{OriginalPath: saveTestImage(t, p, 400, 400)}

	if err := p.Apply(img, ""); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	large, medium, thumb := img.LargePath, img.MediumPath, img.ThumbnailPath

	bogus, err := p.SaveOriginal("products", "broken.png", bytes.NewReader([]byte("not an image")))
	if err != nil {
		t.Fatalf("SaveOriginal: %v", err)
	}

	prevOriginal := img.OriginalPath
	img.OriginalPath = bogus
	if err := p.Apply(img, prevOriginal); err == nil {
		t.Fatal("Apply should fail on an undecodable original")
	}

	// A rejected save leaves the previous variants untouched.
	mustExist(t, p, large)
	mustExist(t, p, medium)
	mustExist(t, p, thumb)
}

func TestApplyClearsVariantsWithoutOriginal(t *testing.T) {
	p := newTestPipeline(t)
	img := &models.ProductImage{
		LargePath:     "derived/gone_800x800.jpg",
		MediumPath:    "derived/gone_400x400.jpg",
		ThumbnailPath: "derived/gone_200x200.jpg",
	}

	if err := p.Apply(img, ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if img.LargePath != "" || img.MediumPath != "" || img.ThumbnailPath != "" {
		t.Error("variants must be cleared when the record has no original")
	}
}

func TestRemoveDeletesAllFiles(t *testing.T) {
	p := newTestPipeline(t)
	img := &models.ProductImage{OriginalPath: saveTestImage(t, p, 500, 500)}

	if err := p.Apply(img, ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	p.Remove(img)

	mustNotExist(t, p, img.OriginalPath)
	mustNotExist(t, p, img.LargePath)
	mustNotExist(t, p, img.MediumPath)
	mustNotExist(t, p, img.ThumbnailPath)
}

func TestSaveOriginalGeneratesUniqueNames(t *testing.T) {
	p := newTestPipeline(t)

	a, err := p.SaveOriginal("store_logos", "logo.png", bytes.NewReader([]byte("a")))
	if err != nil {
		t.Fatalf("SaveOriginal: %v", err)
	}
	b, err := p.SaveOriginal("store_logos", "logo.png", bytes.NewReader([]byte("b")))
	if err != nil {
		t.Fatalf("SaveOriginal: %v", err)
	}

	if a == b {
		t.Errorf("two uploads of the same filename collided at %s", a)
	}
	if filepath.Ext(a) != ".png" {
		t.Errorf("original %s should keep the upload extension", a)
	}
}
