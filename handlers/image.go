package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/nfnt/resize"
)

const (
	// DefaultThumbnailHeight is the height recipe card images are scaled to.
	DefaultThumbnailHeight = 500

	// DefaultMaxImageBytes caps how much of an upstream body is read.
	DefaultMaxImageBytes = 10 << 20

	// DefaultMaxImagePixels caps the declared width*height decoded into memory.
	DefaultMaxImagePixels = 40_000_000
)

var errBlockedAddress = errors.New("destination address is not allowed")

// ImageProxy fetches a remote image, scales it to a fixed height keeping the
// aspect ratio, and returns it in its original format.
type ImageProxy struct {
	Client *http.Client
	Height uint

	// MaxBytes and MaxPixels fall back to the package defaults when zero.
	MaxBytes  int64
	MaxPixels int64
}

// NewImageProxy returns a proxy whose client only dials public addresses.
func NewImageProxy() *ImageProxy {
	return &ImageProxy{
		Client: publicOnlyClient(15 * time.Second),
		Height: DefaultThumbnailHeight,
	}
}

func publicOnlyClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout: 5 * time.Second,
		Control: func(_, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			ip := net.ParseIP(host)
			if ip == nil || !isPublicIP(ip) {
				return fmt.Errorf("%w: %s", errBlockedAddress, host)
			}
			return nil
		},
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{Timeout: timeout, Transport: transport}
}

// isPublicIP reports whether ip is a globally routable unicast address.
func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast())
}

func (p *ImageProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		respondMessage(w, http.StatusBadRequest, "URL parameter is required")
		return
	}

	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid image URL")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid image URL")
		return
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		slog.Warn("failed to fetch image", "url", imageURL, "error", err)
		respondMessage(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("image source returned error", "url", imageURL, "status", resp.StatusCode)
		respondMessage(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}

	maxBytes := p.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		slog.Warn("failed to read image", "url", imageURL, "error", err)
		respondMessage(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	if int64(len(data)) > maxBytes {
		respondMessage(w, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		respondMessage(w, http.StatusUnsupportedMediaType, "Failed to decode image")
		return
	}
	maxPixels := p.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		slog.Warn("image dimensions too large", "url", imageURL, "width", cfg.Width, "height", cfg.Height)
		respondMessage(w, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		respondMessage(w, http.StatusUnsupportedMediaType, "Failed to decode image")
		return
	}

	height := p.Height
	if height == 0 {
		height = DefaultThumbnailHeight
	}
	bounds := img.Bounds()
	aspectRatio := float64(bounds.Dx()) / float64(bounds.Dy())
	width := uint(float64(height) * aspectRatio)

	resized := resize.Resize(width, height, img, resize.Lanczos3)

	buf := &bytes.Buffer{}
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		err = jpeg.Encode(buf, resized, nil)
	case "png":
		err = png.Encode(buf, resized)
	default:
		respondMessage(w, http.StatusUnsupportedMediaType, "Unsupported image format")
		return
	}
	if err != nil {
		slog.Error("failed to encode image", "format", format, "error", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to encode image")
		return
	}

	w.Header().Set("Content-Type", "image/"+format)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}
