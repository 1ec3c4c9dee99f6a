package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyConfig(t *testing.T) {

	var filename = filepath.Join(t.TempDir(), "blog.ini")
	if err := os.WriteFile(filename, []byte("title = My Blog\nlisten = 0.0.0.0:9000\nidle-timeout = 1h\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var fs = flag.NewFlagSet("test", flag.ContinueOnError)
	var title = fs.String("title", "Blog", "")
	var listen = fs.String("listen", "127.0.0.1:8080", "")
	var idleTimeout = fs.Duration("idle-timeout", 12*time.Hour, "")
	fs.String("config", "", "")

	if err := fs.Parse([]string{"-listen", "127.0.0.1:8081"}); err != nil {
		t.Fatal(err)
	}
	if err := applyConfig(fs, filename); err != nil {
		t.Fatal(err)
	}

	if *title != "My Blog" {
		t.Errorf("title: got %q", *title)
	}
	if *listen != "127.0.0.1:8081" {
		t.Errorf("explicit flag has been overwritten: %q", *listen)
	}
	if *idleTimeout != time.Hour {
		t.Errorf("idle-timeout: got %s", *idleTimeout)
	}
}

func TestApplyConfigUnknownKey(t *testing.T) {

	var filename = filepath.Join(t.TempDir(), "blog.ini")
	if err := os.WriteFile(filename, []byte("colour = blue\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var fs = flag.NewFlagSet("test", flag.ContinueOnError)
	if err := applyConfig(fs, filename); err == nil {
		t.Fatal("expected error")
	}
}

func TestApplyConfigMissingFile(t *testing.T) {
	var fs = flag.NewFlagSet("test", flag.ContinueOnError)
	if err := applyConfig(fs, filepath.Join(t.TempDir(), "missing.ini")); err == nil {
		t.Fatal("expected error")
	}
}
