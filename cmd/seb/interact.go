package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/seb/internal/ast"
)

// prompter reads field values from the user. The reader and writer are
// injectable so tests can drive the prompt without a terminal.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewScanner(os.Stdin), out: os.Stderr}
}

func (p *prompter) read(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// fillResolver prompts for each missing field of one resolver. Empty input
// leaves the field missing. Requirements that were popped but not answered
// are pushed back, so an aborted prompt loses nothing.
func (p *prompter) fillResolver(r *ast.Resolver) error {
	var handles []*ast.RequiredField
	for f := r.NextRequired(); f != nil; f = r.NextRequired() {
		handles = append(handles, f)
	}

	for i, f := range handles {
		value, err := p.read(fmt.Sprintf("    %s: ", f.Key()))
		if err != nil {
			for _, rest := range handles[i:] {
				rest.Abandon()
			}
			return err
		}
		if value == "" {
			f.Abandon()
			continue
		}
		f.Insert(ast.NewQuotedString(value))
	}
	return nil
}

// resolveInteractively walks every outstanding resolver, prompting for its
// missing fields, and retries the resolution. Fields the user left empty
// surface in the final report.
func resolveInteractively(br *ast.BiblioResolver, p *prompter) (*ast.Biblio, error) {
	for _, r := range br.Unresolved() {
		fmt.Fprintf(p.out, "%s entry %s is missing required fields\n", r.Kind(), r.Cite())
		if err := p.fillResolver(r); err != nil {
			return nil, err
		}
	}

	biblio, still := br.Resolve()
	if still != nil {
		return nil, still
	}
	return biblio, nil
}
