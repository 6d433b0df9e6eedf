package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
)

// Options describes the output stream an encoder produces.
type Options struct {
	Width   int
	Height  int
	FPS     int
	Encoder string // ffmpeg encoder name, e.g. libx264
	Quality int    // crf / cq / bitrate seed depending on the encoder
}

// Encoder consumes rendered frames one by one and produces a video file.
type Encoder interface {
	Start(ctx context.Context, outPath string) error
	WriteFrame(img image.Image) error
	Close() error
}

// FFmpegEncoder streams raw RGBA frames into an ffmpeg process over stdin.
type FFmpegEncoder struct {
	opts   Options
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
}

func NewFFmpegEncoder(opts Options) *FFmpegEncoder {
	return &FFmpegEncoder{opts: opts}
}

func (e *FFmpegEncoder) Start(ctx context.Context, outPath string) error {
	if e.cmd != nil {
		return fmt.Errorf("encoder already started")
	}

	e.cmd = exec.CommandContext(ctx, "ffmpeg", e.buildFFmpegArgs(outPath)...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(outPath string) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", e.opts.Width, e.opts.Height),
		"-framerate", fmt.Sprintf("%d", e.opts.FPS),
		"-i", "-",
		"-r", fmt.Sprintf("%d", e.opts.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", e.opts.Encoder,
	}

	// Quality knob depends on the encoder
	switch e.opts.Encoder {
	case "h264_videotoolbox":
		bitrate := e.opts.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", e.opts.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", e.opts.Quality), "-preset", "medium")
	}

	args = append(args, outPath)
	return args
}

// WriteFrame streams one frame. The image must match the configured size.
func (e *FFmpegEncoder) WriteFrame(img image.Image) error {
	if e.stdin == nil {
		return fmt.Errorf("encoder not started")
	}
	b := img.Bounds()
	if b.Dx() != e.opts.Width || b.Dy() != e.opts.Height {
		return fmt.Errorf("frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), e.opts.Width, e.opts.Height)
	}
	return writeRawRGBA(e.stdin, img)
}

// Close finishes the stream and waits for ffmpeg to flush the file.
func (e *FFmpegEncoder) Close() error {
	if e.stdin == nil {
		return nil
	}
	e.stdin.Close()
	e.stdin = nil

	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %v, output: %s", err, e.stderr.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
