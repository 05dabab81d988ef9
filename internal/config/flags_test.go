package config

import (
	"image/color"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/scalebench/internal/scaler"
)

type testCLI struct {
	Bench `embed:""`
}

func parse(t *testing.T, args ...string) (*testCLI, error) {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli, Vars(), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	return &cli, err
}

func TestBench_Defaults(t *testing.T) {
	cli, err := parse(t)
	require.NoError(t, err)

	cfg := cli.Config()
	assert.Equal(t, "yuv420p10le", cfg.Src.Format.Name)
	assert.Equal(t, "gbrp", cfg.Dst.Format.Name)
	assert.Equal(t, 1280, cfg.Src.Width)
	assert.Equal(t, 720, cfg.Src.Height)
	assert.Equal(t, 1920, cfg.Dst.Width)
	assert.Equal(t, 1080, cfg.Dst.Height)
	assert.Equal(t, DefaultTimes, cfg.Iterations)
	assert.Zero(t, cfg.Threads)
	assert.Equal(t, scaler.Lanczos, cfg.Filter)
	assert.Equal(t, DefaultFilterArg, cfg.FilterParam)
	assert.Equal(t, Colour{R: LabelColorR, G: LabelColorG, B: LabelColorB, A: 255}, cli.LabelColour)
	assert.Equal(t, "yuv420p10le @ 1280x720", cli.Label())
}

func TestBench_Flags(t *testing.T) {
	cli, err := parse(t,
		"--pixfmt-in=NV12", "--pixfmt-out", "rgba",
		"--width-in=64", "--height-in=64", "--width-out=32", "--height-out=32",
		"--times=10", "--threads=2", "--filter=bilinear", "--label-colour=#010203",
	)
	require.NoError(t, err)

	cfg := cli.Config()
	assert.Equal(t, "nv12", cfg.Src.Format.Name)
	assert.Equal(t, "rgba", cfg.Dst.Format.Name)
	assert.Equal(t, "nv12 @ 64x64 => rgba @ 32x32", cfg.Src.String()+" => "+cfg.Dst.String())
	assert.Equal(t, 10, cfg.Iterations)
	assert.Equal(t, 2, cfg.Threads)
	assert.Equal(t, scaler.Bilinear, cfg.Filter)
	assert.Equal(t, color.RGBA(cli.LabelColour), color.RGBA{R: 1, G: 2, B: 3, A: 255})
}

func TestBench_Env(t *testing.T) {
	t.Setenv("SCALEBENCH_TIMES", "7")
	t.Setenv("SCALEBENCH_PIXFMT_OUT", "bgr24")

	cli, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 7, cli.Times)
	assert.Equal(t, "bgr24", cli.PixfmtOut.Name)
}

func TestBench_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown pixel format", []string{"--pixfmt-in=yuv999p"}},
		{"zero width", []string{"--width-in=0"}},
		{"negative height", []string{"--height-out=-1"}},
		{"negative times", []string{"--times=-1"}},
		{"negative threads", []string{"--threads=-3"}},
		{"unknown filter", []string{"--filter=box"}},
		{"bad colour", []string{"--label-colour=orange"}},
		{"missing source file", []string{"--source=/no/such/file.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestBench_ValidateDirect(t *testing.T) {
	cli, err := parse(t)
	require.NoError(t, err)

	b := cli.Bench
	b.WidthOut = -5
	assert.Error(t, b.Validate())

	b = cli.Bench
	b.FilterParam = -1
	assert.Error(t, b.Validate())
}

func TestBench_Warnings(t *testing.T) {
	cli, err := parse(t, "--filter=bilinear", "--filter-param=3")
	require.NoError(t, err)
	warnings := cli.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "--filter-param")
	assert.Contains(t, warnings[0], "bilinear")

	cli, err = parse(t, "--filter=lanczos", "--filter-param=3")
	require.NoError(t, err)
	assert.Empty(t, cli.Warnings())

	cli, err = parse(t, "--filter=nearest")
	require.NoError(t, err)
	assert.Empty(t, cli.Warnings())
}
