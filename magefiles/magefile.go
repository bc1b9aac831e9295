//go:build mage

// Package main contains Mage build targets for scholar-search developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "scholar-search"
	cmdPkg  = "./cmd/scholar-search"
)

// sampleConfig is written by Init when no config file exists.
const sampleConfig = `# scholar-search configuration. Every key can also be set with a
# SCHOLAR_SEARCH_ environment variable, e.g. SCHOLAR_SEARCH_CLIENT_API_KEY.
client:
  timeout: 30s
  max_retries: 0
session:
  name: default
log:
  level: info
  pretty: true
serve:
  addr: 127.0.0.1:8080
`

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Init creates the secrets directory and a starter config file.
func Init() error {
	if err := os.MkdirAll(".secrets", 0o700); err != nil {
		return fmt.Errorf("creating .secrets: %w", err)
	}
	fmt.Println("   .secrets/ (put your key in .secrets/semantic-scholar-api-key)")

	const cfg = "scholar-search.yaml"
	if _, err := os.Stat(cfg); os.IsNotExist(err) {
		if err := os.WriteFile(cfg, []byte(sampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg, err)
		}
		fmt.Println("  ", cfg)
	}
	fmt.Println("Project initialized.")
	return nil
}

// Serve builds the binary and starts the HTTP front end.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

func version() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}
