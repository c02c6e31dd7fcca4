package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/32bitkid/retroboy"
	"github.com/32bitkid/retroboy/config"
	"github.com/32bitkid/retroboy/frame"
	"github.com/32bitkid/retroboy/internal/logging"
	"github.com/32bitkid/retroboy/screen"
	"github.com/32bitkid/retroboy/transform"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// sequentialName is used for frames that carry no name of their own.
const sequentialName = "IMGR%04d.png"

type processOptions struct {
	Settings config.Settings
	Sampling retroboy.Sampling
	Geometry transform.Geometry
	Display  *screen.Style
	Out      string

	RawFormat *frame.Format
	RawSize   transform.Resolution
}

func NewProcessCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [files...]",
		Short: "apply a filter to pictures",
		Long:  "Normalizes each input's orientation and size, adjusts contrast, applies a filter preset and writes the result as PNG.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := processFlags(ctx, cmd)
			if err != nil {
				return err
			}
			return runProcess(ctx, args, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("filter", "f", retroboy.DefaultPreset, "filter preset, see the filters command")
	pf.StringP("contrast", "c", "0", "contrast adjustment [-100,100]")
	pf.StringP("resolution", "r", config.DefaultResolution, "output resolution WIDTHxHEIGHT")
	pf.Bool("bilinear", false, "resample with bilinear filtering instead of nearest pixel")
	pf.String("facing", "back", "camera facing (back|front); front mirrors the picture")
	pf.Int("sensor", 0, "sensor orientation in degrees")
	pf.Int("rotation", 0, "display rotation in degrees")
	pf.String("display", "", "render through a simulated display (crt|lcd)")
	pf.StringP("out", "o", ".", "output file, or directory for generated names")
	pf.String("raw-format", "", "read inputs as raw frames (nv21|rgb565|rgba8888|gray8)")
	pf.String("raw-size", "", "raw frame size WIDTHxHEIGHT")
	return cmd
}

func processFlags(ctx context.Context, cmd *cobra.Command) (processOptions, error) {
	var opts processOptions
	flags := cmd.Flags()

	var snap config.Snapshot
	snap.Filter, _ = flags.GetString("filter")
	snap.Contrast, _ = flags.GetString("contrast")
	snap.Resolution, _ = flags.GetString("resolution")
	opts.Settings = config.Parse(ctx, snap)

	if bilinear, _ := flags.GetBool("bilinear"); bilinear {
		opts.Sampling = retroboy.Bilinear
	}

	switch facing, _ := flags.GetString("facing"); strings.ToLower(facing) {
	case "back":
		opts.Geometry.Facing = transform.FacingBack
	case "front":
		opts.Geometry.Facing = transform.FacingFront
	default:
		return opts, fmt.Errorf("unknown facing %q", facing)
	}
	opts.Geometry.SensorOrientation, _ = flags.GetInt("sensor")
	opts.Geometry.DisplayRotation, _ = flags.GetInt("rotation")

	if display, _ := flags.GetString("display"); display != "" {
		style, err := screen.ParseStyle(display)
		if err != nil {
			return opts, err
		}
		opts.Display = &style
	}

	opts.Out, _ = flags.GetString("out")

	if rawFormat, _ := flags.GetString("raw-format"); rawFormat != "" {
		f, err := frame.ParseFormat(rawFormat)
		if err != nil {
			return opts, err
		}
		opts.RawFormat = &f
		rawSize, _ := flags.GetString("raw-size")
		if opts.RawSize, err = config.ParseResolution(rawSize); err != nil {
			return opts, fmt.Errorf("--raw-size: %w", err)
		}
	}
	return opts, nil
}

func runProcess(ctx context.Context, inputs []string, opts processOptions) error {
	cfg := opts.Settings.PipelineConfig()
	cfg.Sampling = opts.Sampling
	p, err := retroboy.New(cfg)
	if err != nil {
		return err
	}

	outDir := ""
	if info, err := os.Stat(opts.Out); err == nil && info.IsDir() {
		outDir = opts.Out
	} else if len(inputs) > 1 {
		return fmt.Errorf("%s: not a directory, needed for %d inputs", opts.Out, len(inputs))
	}

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		ctx := logging.AppendCtx(ctx, slog.String("input", in))

		src, err := loadFrame(in, opts)
		if err != nil {
			return err
		}
		pic, err := p.Process(src, opts.Geometry)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}

		var result image.Image = pic
		if opts.Display != nil {
			result = screen.Render(pic, *opts.Display)
		}

		path := opts.Out
		if outDir != "" {
			if path, err = outputName(outDir, in, opts.RawFormat != nil); err != nil {
				return err
			}
		}
		if err := writePNG(path, result); err != nil {
			return err
		}
		slog.InfoContext(ctx, "wrote picture",
			"path", path,
			"filter", opts.Settings.Filter,
			"size", result.Bounds().Size().String(),
		)
	}
	return nil
}

func loadFrame(path string, opts processOptions) (image.Image, error) {
	if opts.RawFormat != nil {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		img, err := frame.Decode(buf, opts.RawSize.Width, opts.RawSize.Height, *opts.RawFormat)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("decoded", "path", path, "format", format, "bounds", img.Bounds().String())
	return img, nil
}

// outputName picks where a picture goes inside dir. Named inputs keep their
// base name with a .png extension; raw frames get the next free sequential
// name.
func outputName(dir, input string, sequential bool) (string, error) {
	if !sequential {
		base := filepath.Base(input)
		if stem, _, ok := strings.Cut(base, "."); ok && stem != "" {
			base = stem
		}
		return filepath.Join(dir, base+".png"), nil
	}
	for n := 0; n < 10000; n++ {
		path := filepath.Join(dir, fmt.Sprintf(sequentialName, n))
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: no free picture names left", dir)
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
