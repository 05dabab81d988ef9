package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/scalebench/internal/bench"
	"github.com/linuxmatters/scalebench/internal/cli"
	"github.com/linuxmatters/scalebench/internal/config"
	"github.com/linuxmatters/scalebench/internal/pixfmt"
	"github.com/linuxmatters/scalebench/internal/renderer"
	"github.com/linuxmatters/scalebench/internal/scaler"
)

func init() {
	cli.DisableColour()
}

type failingConverter struct{}

func (failingConverter) Convert() error {
	return &scaler.Error{Op: "scale", Code: scaler.CodeInvalid, Err: errors.New("bad frame")}
}

func (failingConverter) Close() {}

func testBench(t *testing.T) *config.Bench {
	t.Helper()
	return &config.Bench{
		PixfmtIn:    config.PixelFormat{Format: pixfmt.MustLookup("yuv420p")},
		PixfmtOut:   config.PixelFormat{Format: pixfmt.MustLookup("rgb24")},
		WidthIn:     96,
		HeightIn:    54,
		WidthOut:    48,
		HeightOut:   27,
		Times:       2,
		Filter:      "bilinear",
		LabelColour: config.Colour{R: 255, A: 255},
	}
}

func TestLoadSource_TestCard(t *testing.T) {
	img, err := loadSource(testBench(t))
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 54, img.Bounds().Dy())
}

func TestLoadSource_File(t *testing.T) {
	b := testBench(t)

	card, err := loadSource(b)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, renderer.SavePNG(card, path))

	b.Source = path
	b.WidthIn, b.HeightIn = 32, 18
	img, err := loadSource(b)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 18, img.Bounds().Dy())

	b.Source = filepath.Join(t.TempDir(), "missing.png")
	_, err = loadSource(b)
	assert.Error(t, err)
}

func TestExitCode_Success(t *testing.T) {
	b := testBench(t)
	source, err := loadSource(b)
	require.NoError(t, err)

	var out, stderr bytes.Buffer
	err = runPlain(&out, b.Config(), []bench.Option{
		bench.WithConverter(bench.ScaleConverter(source)),
		bench.WithParallelism(2),
	})
	assert.Equal(t, 0, exitCode(&stderr, err))
	assert.Empty(t, stderr.String())

	report := out.String()
	assert.True(t, strings.HasPrefix(report, "yuv420p @ 96x54 => rgb24 @ 48x27\n"), report)
	assert.Equal(t, 2, strings.Count(report, "fps:"))
}

func TestExitCode_TrialFailure(t *testing.T) {
	b := testBench(t)
	newFailing := func(bench.Config) (bench.Converter, error) { return failingConverter{}, nil }

	var out, stderr bytes.Buffer
	err := runPlain(&out, b.Config(), []bench.Option{
		bench.WithConverter(newFailing),
		bench.WithParallelism(2),
	})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(&stderr, err))

	lines := strings.Split(strings.TrimRight(stderr.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "failure: -22", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "runtime error: "), lines[1])
	assert.NotContains(t, out.String(), "fps:")
}
