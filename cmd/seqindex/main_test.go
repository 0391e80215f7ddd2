package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/seqindex/internal/ioerr"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupGenomes(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.fasta": ">a\nACGT\nAC\n",
		"b.FASTA": ">b\nTTTT\n",
		"c.txt":   "not a sequence",
		"readme":  "notes",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir, t.TempDir()
}

func TestRootCmd_Export(t *testing.T) {
	dir, out := setupGenomes(t)
	pathsOut := filepath.Join(out, "seq_path.txt")
	namesOut := filepath.Join(out, "seq_name.txt")

	stdout, err := execute(t,
		"--directory", dir,
		"--paths-out", pathsOut,
		"--names-out", namesOut,
	)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "exported 1 entries") {
		t.Errorf("output = %q, should report 1 entry", stdout)
	}

	paths, _ := os.ReadFile(pathsOut)
	if want := filepath.Join(dir, "a.fasta") + "\n"; string(paths) != want {
		t.Errorf("seq_path.txt = %q, want %q", paths, want)
	}
	names, _ := os.ReadFile(namesOut)
	if string(names) != "a\n" {
		t.Errorf("seq_name.txt = %q, want %q", names, "a\n")
	}
}

func TestRootCmd_CustomSuffix(t *testing.T) {
	dir, out := setupGenomes(t)
	namesOut := filepath.Join(out, "names.txt")

	_, err := execute(t,
		"-d", dir,
		"-s", ".FASTA",
		"--paths-out", filepath.Join(out, "paths.txt"),
		"--names-out", namesOut,
	)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	names, _ := os.ReadFile(namesOut)
	if string(names) != "b\n" {
		t.Errorf("names.txt = %q, want %q", names, "b\n")
	}
}

func TestRootCmd_MissingDirectory(t *testing.T) {
	out := t.TempDir()
	missing := filepath.Join(out, "no-such-dir")

	_, err := execute(t,
		"--directory", missing,
		"--paths-out", filepath.Join(out, "seq_path.txt"),
		"--names-out", filepath.Join(out, "seq_name.txt"),
	)
	if !errors.Is(err, ioerr.ErrDirectoryNotFound) {
		t.Fatalf("Execute() error = %v, want %v", err, ioerr.ErrDirectoryNotFound)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error should name %s: %v", missing, err)
	}
	if _, statErr := os.Stat(filepath.Join(out, "seq_path.txt")); !os.IsNotExist(statErr) {
		t.Error("seq_path.txt should not be created")
	}
}

func TestRootCmd_RejectsEmptySuffix(t *testing.T) {
	dir, out := setupGenomes(t)

	_, err := execute(t,
		"-d", dir,
		"--suffix", "",
		"--paths-out", filepath.Join(out, "p.txt"),
		"--names-out", filepath.Join(out, "n.txt"),
	)
	if err == nil || !strings.Contains(err.Error(), "suffix cannot be empty") {
		t.Errorf("Execute() error = %v, want empty suffix error", err)
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	if _, err := execute(t, "somewhere"); err == nil {
		t.Error("Execute() should reject positional arguments")
	}
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir, out := setupGenomes(t)
	pathsOut := filepath.Join(out, "from-config.txt")
	cfgPath := filepath.Join(out, "seqindex.yaml")
	cfg := "directory: " + dir + "\n" +
		"paths_out: " + pathsOut + "\n" +
		"names_out: " + filepath.Join(out, "names-from-config.txt") + "\n"
	os.WriteFile(cfgPath, []byte(cfg), 0o644)

	t.Run("file values apply", func(t *testing.T) {
		if _, err := execute(t, "--config", cfgPath); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if _, err := os.Stat(pathsOut); err != nil {
			t.Errorf("%s should exist: %v", pathsOut, err)
		}
	})

	t.Run("flags override file", func(t *testing.T) {
		override := filepath.Join(out, "override.txt")
		if _, err := execute(t, "--config", cfgPath, "--paths-out", override); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if _, err := os.Stat(override); err != nil {
			t.Errorf("%s should exist: %v", override, err)
		}
	})
}

func TestPreprocessCmd(t *testing.T) {
	dir, out := setupGenomes(t)
	pathsOut := filepath.Join(out, "seq_path.txt")
	lengthOut := filepath.Join(out, "length.data")
	dataOut := filepath.Join(out, "seq.data")

	if _, err := execute(t,
		"-d", dir,
		"--paths-out", pathsOut,
		"--names-out", filepath.Join(out, "seq_name.txt"),
	); err != nil {
		t.Fatalf("export error = %v", err)
	}

	stdout, err := execute(t, "preprocess",
		"--paths-in", pathsOut,
		"--length-out", lengthOut,
		"--data-out", dataOut,
		"--record-size", "16",
	)
	if err != nil {
		t.Fatalf("preprocess error = %v", err)
	}
	if !strings.Contains(stdout, "packed 1 records (6 bases, 16 bytes each)") {
		t.Errorf("output = %q, should report 1 record of 16 bytes", stdout)
	}

	lengths, _ := os.ReadFile(lengthOut)
	if string(lengths) != "6\n" {
		t.Errorf("length.data = %q, want %q", lengths, "6\n")
	}
	info, err := os.Stat(dataOut)
	if err != nil {
		t.Fatalf("seq.data should exist: %v", err)
	}
	if info.Size() != 16 {
		t.Errorf("seq.data size = %d, want 16", info.Size())
	}
}

func TestPreprocessCmd_RejectsRecordSize(t *testing.T) {
	_, err := execute(t, "preprocess", "--record-size", "0")
	if err == nil || !strings.Contains(err.Error(), "record_size must be positive") {
		t.Errorf("Execute() error = %v, want record size error", err)
	}
}

func TestConfigCmd(t *testing.T) {
	stdout, err := execute(t, "config")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"suffix: .fasta", "paths_out: seq_path.txt", "names_out: seq_name.txt", "record_size: 65536"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config output should contain %q:\n%s", want, stdout)
		}
	}
}

func TestConfigCmd_FlagsOverride(t *testing.T) {
	stdout, err := execute(t, "config", "--directory", "/srv/genomes", "--suffix", ".fa", "--names-out", "fa_name.txt")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"directory: /srv/genomes", "suffix: .fa\n", "names_out: fa_name.txt"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config output should contain %q:\n%s", want, stdout)
		}
	}
}

func TestServeCmd_AcceptsExportFlags(t *testing.T) {
	cmd, args, err := newRootCmd().Find([]string{"serve", "--directory", "/srv/genomes", "--suffix", ".fa"})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if cmd.Name() != "serve" {
		t.Fatalf("Find() = %q, want serve", cmd.Name())
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	for flag, want := range map[string]string{"directory": "/srv/genomes", "suffix": ".fa"} {
		if !cmd.Flags().Changed(flag) {
			t.Errorf("--%s should be marked as changed", flag)
		}
		if got, _ := cmd.Flags().GetString(flag); got != want {
			t.Errorf("--%s = %q, want %q", flag, got, want)
		}
	}
}

func TestPreprocessParams(t *testing.T) {
	cfg, err := loadSettings(newRootCmd(), &options{})
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}

	if got := preprocessParams(cfg, "ignored.txt", false); got.PathsIn != cfg.PathsOut {
		t.Errorf("PathsIn = %q, want %q", got.PathsIn, cfg.PathsOut)
	}
	if got := preprocessParams(cfg, "other.txt", true); got.PathsIn != "other.txt" {
		t.Errorf("PathsIn = %q, want %q", got.PathsIn, "other.txt")
	}
}
