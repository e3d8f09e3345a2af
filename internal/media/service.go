package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"theroom/internal/observability"
)

const (
	MaxFileSize    = 50 * 1024 * 1024 // 50 MB
	MaxImageWidth  = 1200
	MaxImageHeight = 800
	JPEGQuality    = 80
	MaxImagePixels = 40_000_000
	UploadsBaseDir = "./uploads"
	StaticURLBase  = "/uploads"

	batchConcurrency = 4
)

// AllowedImageTypes are decoded and re-encoded as JPEG.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// File is one uploaded file awaiting storage.
type File struct {
	Name string
	Size int64
	open func() (io.ReadCloser, error)
}

func FromHeader(fh *multipart.FileHeader) File {
	return File{Name: fh.Filename, Size: fh.Size, open: func() (io.ReadCloser, error) { return fh.Open() }}
}

func FromBytes(name string, data []byte) File {
	return File{Name: name, Size: int64(len(data)), open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}}
}

// Service stores tenant media on local disk and records every file.
// Images are bounded to MaxImageWidth x MaxImageHeight and recompressed; videos are kept as sent.
type Service struct {
	repo       Repository
	baseDir    string
	staticBase string
	maxSize    int64
	now        func() time.Time
}

func NewService(repo Repository, baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	return &Service{
		repo:       repo,
		baseDir:    baseDir,
		staticBase: strings.TrimRight(staticBase, "/"),
		maxSize:    MaxFileSize,
		now:        time.Now,
	}
}

// ProcessImage resizes f to fit the bounds without enlarging it and stores it as JPEG.
func (s *Service) ProcessImage(ctx context.Context, hotelID, prefix string, f File) (upload *Upload, err error) {
	defer func() { observability.ObserveMedia(KindImage, err) }()

	if err := s.checkSize(f); err != nil {
		return nil, err
	}
	data, err := s.readAll(f)
	if err != nil {
		return nil, err
	}
	mimeType := detectMime(data, f.Name)
	if !AllowedImageTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// decoding allocates width*height pixels up front
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrUploadFailed, f.Name, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, ErrImageTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrUploadFailed, f.Name, err)
	}
	var out bytes.Buffer
	if err := jpeg.Encode(&out, FitWithin(src, MaxImageWidth, MaxImageHeight), &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrUploadFailed, f.Name, err)
	}

	return s.store(ctx, hotelID, prefix, KindImage, f.Name, "image/jpeg", ".jpeg", bytes.NewReader(out.Bytes()))
}

// StoreVideo stores f unchanged after checking it is a video.
func (s *Service) StoreVideo(ctx context.Context, hotelID, prefix string, f File) (upload *Upload, err error) {
	defer func() { observability.ObserveMedia(KindVideo, err) }()

	if err := s.checkSize(f); err != nil {
		return nil, err
	}
	rc, err := f.open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUploadFailed, f.Name, err)
	}
	defer rc.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUploadFailed, f.Name, err)
	}
	mimeType := detectMime(head[:n], f.Name)
	if !strings.HasPrefix(mimeType, "video/") {
		return nil, ErrInvalidMimeType
	}

	ext := mimeToExt(mimeType)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head[:n]), rc), s.maxSize+1)
	return s.store(ctx, hotelID, prefix, KindVideo, f.Name, mimeType, ext, body)
}

// StoreBatch processes images and videos concurrently. URLs keep input order.
// On any failure every file written by the batch is removed.
func (s *Service) StoreBatch(ctx context.Context, hotelID, prefix string, images, videos []File) (Batch, error) {
	batch := Batch{
		Images: make([]*Upload, len(images)),
		Videos: make([]*Upload, len(videos)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, f := range images {
		g.Go(func() error {
			u, err := s.ProcessImage(gctx, hotelID, prefix, f)
			if err != nil {
				return err
			}
			batch.Images[i] = u
			return nil
		})
	}
	for i, f := range videos {
		g.Go(func() error {
			u, err := s.StoreVideo(gctx, hotelID, prefix, f)
			if err != nil {
				return err
			}
			batch.Videos[i] = u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.Discard(context.WithoutCancel(ctx), batch.all()...)
		return Batch{}, err
	}
	return batch, nil
}

// Discard removes stored files and their records. Nil entries are skipped.
func (s *Service) Discard(ctx context.Context, uploads ...*Upload) {
	for _, u := range uploads {
		if u == nil {
			continue
		}
		if err := os.Remove(filepath.Join(s.baseDir, u.FilePath)); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("upload_id", u.ID).Msg("failed to remove media file")
		}
		if err := s.repo.Delete(ctx, u.HotelID, u.ID); err != nil {
			log.Warn().Err(err).Str("upload_id", u.ID).Msg("failed to remove media record")
		}
	}
}

// Remove deletes the file behind url. Unknown URLs are ignored.
func (s *Service) Remove(ctx context.Context, hotelID, url string) error {
	u, err := s.repo.GetByURL(ctx, hotelID, url)
	if err == ErrUploadNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	s.Discard(ctx, u)
	return nil
}

// List returns the hotel's media library, newest first. kind may be empty.
func (s *Service) List(ctx context.Context, hotelID, kind string) ([]*Upload, error) {
	return s.repo.ListByHotel(ctx, hotelID, kind)
}

func (s *Service) store(ctx context.Context, hotelID, prefix, kind, originalName, mimeType, ext string, body io.Reader) (*Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// uploads/YYYY/MM/DD/
	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create upload directory: %w", ErrUploadFailed, err)
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("%s-%s%s", sanitizeName(prefix), id, ext)
	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: create file: %w", ErrUploadFailed, err)
	}
	written, err := io.Copy(dst, body)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: write file: %w", ErrUploadFailed, err)
	}
	if written > s.maxSize {
		_ = os.Remove(absPath)
		return nil, ErrFileTooLarge
	}

	relPath := filepath.ToSlash(filepath.Join(relDir, filename))
	upload := &Upload{
		ID:           id,
		HotelID:      hotelID,
		Kind:         kind,
		OriginalName: originalName,
		FilePath:     relPath,
		FileURL:      s.staticBase + "/" + relPath,
		MimeType:     mimeType,
		Size:         written,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, upload); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: save upload record: %w", ErrUploadFailed, err)
	}
	return upload, nil
}

func (s *Service) checkSize(f File) error {
	if f.Size == 0 {
		return ErrEmptyFile
	}
	if f.Size > s.maxSize {
		return ErrFileTooLarge
	}
	return nil
}

func (s *Service) readAll(f File) ([]byte, error) {
	rc, err := f.open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUploadFailed, f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUploadFailed, f.Name, err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}

// FitWithin scales src down to fit maxW x maxH keeping its aspect ratio.
// Smaller images are returned unchanged. Transparent areas become white.
func FitWithin(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return flatten(src, w, h)
	}

	scale := float64(maxW) / float64(w)
	if hs := float64(maxH) / float64(h); hs < scale {
		scale = hs
	}
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func flatten(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Over)
	return dst
}

func detectMime(head []byte, name string) string {
	mimeType := strings.Split(http.DetectContentType(head), ";")[0]
	if mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			mimeType = strings.Split(byExt, ";")[0]
		}
	}
	return mimeType
}

func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 60 {
		name = name[:60]
	}
	if name == "" {
		return "file"
	}
	return name
}

func mimeToExt(mimeType string) string {
	switch mimeType {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	case "video/avi", "video/x-msvideo":
		return ".avi"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
