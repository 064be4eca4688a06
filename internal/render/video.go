package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os/exec"
	"strconv"

	"github.com/botarena/battlesim/internal/engine"
)

// ErrEncoderUnavailable reports that the external video encoder could not
// be found or started. Callers are expected to catch it and fall back to
// GIF output.
var ErrEncoderUnavailable = errors.New("render: video encoder unavailable")

// RenderMP4 encodes every frame through an external ffmpeg process. The
// frames stream to ffmpeg's stdin as PNGs so no intermediate files touch
// disk.
func (r *Renderer) RenderMP4(res *engine.Result, outPath string) error {
	if len(res.Frames) == 0 {
		return fmt.Errorf("render: no frames to encode")
	}

	ffmpeg, err := exec.LookPath(r.opts.FFmpegPath)
	if err != nil {
		return fmt.Errorf("%w: %s not found", ErrEncoderUnavailable, r.opts.FFmpegPath)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(ffmpeg,
		"-y",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-r", strconv.Itoa(r.opts.FPS),
		"-i", "-",
		// libx264 requires even dimensions.
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-vcodec", "libx264",
		outPath,
	)
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening encoder pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncoderUnavailable, err)
	}

	ros := buildRoster(res)
	encodeErr := func() error {
		defer func() { _ = stdin.Close() }()
		for i, f := range res.Frames {
			img := r.drawFrame(f, ros)
			if err := png.Encode(stdin, img); err != nil {
				return fmt.Errorf("streaming frame %d: %w", i, err)
			}
			if r.opts.ShowProgress && (i+1)%100 == 0 {
				r.opts.Logger.Info("MP4 render progress",
					"rendered", i+1,
					"total", len(res.Frames))
			}
		}
		return nil
	}()

	waitErr := cmd.Wait()
	if encodeErr != nil {
		return encodeErr
	}
	if waitErr != nil {
		return fmt.Errorf("ffmpeg failed: %w (%s)", waitErr, tail(stderr.String(), 300))
	}
	r.opts.Logger.Debug("MP4 written", "path", outPath, "frames", len(res.Frames))
	return nil
}

// tail returns the last n bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
