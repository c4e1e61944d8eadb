package cli

import (
	"testing"

	"github.com/ha1tch/orbview/internal/config"
)

func TestExportOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	var flags exportFlags
	flags.steps = -1 // the unset sentinel the flag default uses

	opts := flags.options(cfg)
	if opts.Width != 800 || opts.Height != 600 {
		t.Errorf("size %dx%d, want the config defaults", opts.Width, opts.Height)
	}
	if opts.Scale != 2 || opts.Steps != 600 {
		t.Errorf("scale %v steps %d, want the config defaults", opts.Scale, opts.Steps)
	}
	if !opts.Labels {
		t.Error("labels off by default")
	}
}

func TestExportOptionsFlagOverrides(t *testing.T) {
	cfg := config.Default()
	flags := exportFlags{
		width:  1024,
		height: 768,
		scale:  3,
		steps:  0,
		title:  "Weekly orbit",
		plain:  true,
	}

	opts := flags.options(cfg)
	if opts.Width != 1024 || opts.Height != 768 {
		t.Errorf("size %dx%d, want the flag values", opts.Width, opts.Height)
	}
	if opts.Scale != 3 {
		t.Errorf("scale = %v, want 3", opts.Scale)
	}
	if opts.Steps != 0 {
		t.Errorf("steps = %d, want the explicit 0", opts.Steps)
	}
	if opts.Title != "Weekly orbit" {
		t.Errorf("title = %q", opts.Title)
	}
	if opts.Labels {
		t.Error("plain flag did not disable labels")
	}
}
