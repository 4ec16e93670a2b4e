package main

import (
	"flag"
	"testing"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions([]string{"mandelbrot-gpu"})
	if err != nil {
		t.Fatalf("parseOptions returned error: %v", err)
	}
	if opts.width != 800 || opts.height != 600 {
		t.Errorf("unexpected default size %dx%d", opts.width, opts.height)
	}
	if opts.maxIter != 800 {
		t.Errorf("unexpected default iteration cap %d", opts.maxIter)
	}
	if opts.scale != 1 || opts.fullscreen || opts.terminal || opts.double {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestParseOptions_AllFlags(t *testing.T) {
	opts, err := parseOptions([]string{
		"mandelbrot-gpu",
		"-width", "1024", "-height", "768",
		"-max-iter", "1200", "-scale", "2",
		"-fullscreen", "-terminal", "-double",
	})
	if err != nil {
		t.Fatalf("parseOptions returned error: %v", err)
	}
	if opts.width != 1024 || opts.height != 768 || opts.maxIter != 1200 || opts.scale != 2 {
		t.Errorf("unexpected values: %+v", opts)
	}
	if !opts.fullscreen || !opts.terminal || !opts.double {
		t.Errorf("boolean flags not set: %+v", opts)
	}
}

func TestParseOptions_RejectsDegenerateValues(t *testing.T) {
	cases := [][]string{
		{"mandelbrot-gpu", "-width", "0"},
		{"mandelbrot-gpu", "-height", "-600"},
		{"mandelbrot-gpu", "-max-iter", "0"},
	}
	for _, args := range cases {
		if _, err := parseOptions(args); err == nil {
			t.Errorf("parseOptions(%v) should fail", args[1:])
		}
	}
}

func TestParseOptions_Help(t *testing.T) {
	_, err := parseOptions([]string{"mandelbrot-gpu", "-h"})
	if err != flag.ErrHelp {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}
