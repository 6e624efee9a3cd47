package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testConfig = `content_dir: %s
output_dir: %s
site:
  base_url: https://example.com
  name: Jane Doe
  job_title: AI Product Manager
  description: Builds AI products. Writes about it.
  profile_url: https://www.linkedin.com/in/example
  alumni_of: Example University
`

const robotsStudy = `---
title: Warehouse Robots
role: Product Lead
company: Acme Robotics
date: 2024-2025
summary: Shipping a fleet manager.
order: 1
tags: [robotics]
---
## Overview

We shipped a fleet manager.
`

const hydrogenStudy = `---
title: Hydrogen Pricing
role: PM
company: H2Co
date: "2023-06-01"
summary: Pricing hydrogen.
order: 2
---
Pricing body.
`

const essay = `---
title: On Evals
date: "2025-02-10"
summary: Why evals matter.
---
Evals matter.
`

// site is a content directory plus a config file pointing at it
type site struct {
	dir     string
	content string
	out     string
	config  string
}

func newSite(t *testing.T) *site {
	t.Helper()
	dir := t.TempDir()
	s := &site{
		dir:     dir,
		content: filepath.Join(dir, "content"),
		out:     filepath.Join(dir, "out"),
		config:  filepath.Join(dir, "portfolio.yaml"),
	}
	s.write(t, "case-studies/robots.mdx", robotsStudy)
	s.write(t, "case-studies/hydrogen.mdx", hydrogenStudy)
	s.write(t, "writing/evals.md", essay)
	require.NoError(t, os.WriteFile(s.config, []byte(fmt.Sprintf(testConfig, s.content, s.out)), 0o600))
	return s
}

func (s *site) write(t *testing.T, rel, data string) {
	t.Helper()
	path := filepath.Join(s.content, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

// run executes the CLI in-process with the site's config and returns stdout
func (s *site) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return s.runWithInput(t, "", args...)
}

func (s *site) runWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", s.config}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	_, err := rootCmd.ExecuteC()
	return stdout.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
