// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command patitas reads Markdown from a file (or stdin) and writes
// rendered output to stdout: Parse then render, the same pipeline
// Markdown.Render runs internally, wired up as a standalone tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lbliii/patitas-go"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("patitas", flag.ContinueOnError)
	fs.SetOutput(stderr)
	llm := fs.Bool("llm", false, "render the plain-text LLM format instead of HTML")
	strict := fs.Bool("strict", false, "upgrade directive contract violations to fatal diagnostics")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var r io.Reader = stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer f.Close()
		r = f
	}

	source, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg := patitas.DefaultConfig()
	cfg.StrictContracts = *strict
	m := patitas.New(cfg)

	doc := m.Parse(source)
	for _, d := range doc.Diagnostics {
		fmt.Fprintf(stderr, "%s: %s\n", d.Severity, d.Message)
	}

	var renderErr error
	if *llm {
		renderErr = m.RenderLLMTo(stdout, source)
	} else {
		renderErr = m.RenderTo(stdout, source)
	}
	if renderErr != nil {
		fmt.Fprintln(stderr, renderErr)
		return 1
	}

	for _, d := range doc.Diagnostics {
		if d.Severity == patitas.SeverityError {
			return 1
		}
	}
	return 0
}
