// Package naming derives identifiers and file names: function names from
// free-form labels, unique default names, sibling de-duplication and
// numbered backup files.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// FunctionName turns a label such as "apply smooth filter" into a
// camel-cased identifier ("applySmoothFilter"). Every word run is
// capitalized and the runs are concatenated. When the label starts with a
// letter, that letter is lowercased.
func FunctionName(label string) string {
	if label == "" {
		return ""
	}

	var b strings.Builder
	for _, w := range wordRun.FindAllString(label, -1) {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	name := b.String()
	if name == "" {
		return ""
	}

	first, _ := utf8.DecodeRuneInString(label)
	if unicode.IsLetter(first) {
		_, size := utf8.DecodeRuneInString(name)
		name = string(unicode.ToLower(first)) + name[size:]
	}
	return name
}

// UniqueDefaultName returns base_N where N is one more than the largest
// suffix already used by a name of the form base_<digits>. When no such
// name exists, N is len(names).
func UniqueDefaultName(base string, names []string) string {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `_(\d+)$`)

	highest, found := -1, false
	for _, n := range names {
		m := re.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = true
		if v > highest {
			highest = v
		}
	}
	if !found {
		return fmt.Sprintf("%s_%d", base, len(names))
	}
	return fmt.Sprintf("%s_%d", base, highest+1)
}

// Dedupe renames name when more than one entry of all is name itself or
// a numbered variant of it (name_1, name_2, ...). all is expected to
// contain name. The new name is name_<count-1>, bumped until no entry of
// all uses it.
func Dedupe(name string, all []string) string {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `(?:_\d+)*$`)
	count := 0
	taken := make(map[string]struct{}, len(all))
	for _, n := range all {
		if re.MatchString(n) {
			count++
		}
		taken[n] = struct{}{}
	}
	if count <= 1 {
		return name
	}
	for n := count - 1; ; n++ {
		candidate := name + "_" + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// BackupName returns "<path>.old<N>" where N is one more than the highest
// backup number already present next to path.
func BackupName(path string) (string, error) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	re := regexp.MustCompile(`^` + regexp.QuoteMeta(file) + `\.old(\d+)$`)
	highest := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v > highest {
			highest = v
		}
	}
	return path + ".old" + strconv.Itoa(highest+1), nil
}
