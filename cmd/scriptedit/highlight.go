package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dshills/scriptedit/internal/language"
	"github.com/dshills/scriptedit/internal/repl"
	"github.com/dshills/scriptedit/internal/session"
)

// runHighlight prints each file, or stdin, line by line with highlighting.
func runHighlight(bundle *language.Bundle, files []string, color bool) int {
	s := session.New(bundle.Name, bundle.Syntax, bundle.Tree)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if len(files) == 0 {
		if err := dump(out, os.Stdin, s, bundle, color); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	code := 0
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
			continue
		}
		err = dump(out, f, s, bundle, color)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			code = 1
		}
	}
	return code
}

func dump(w io.Writer, r io.Reader, s *session.Session, bundle *language.Bundle, color bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if _, err := fmt.Fprintln(w, repl.Echo(s, bundle.Theme, sc.Text(), color)); err != nil {
			return err
		}
	}
	return sc.Err()
}
