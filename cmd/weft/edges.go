package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/weft"
)

// readEdges feeds a tab-separated edge list into b.
//
// Each non-empty line is "from<TAB>to", "from<TAB>to<TAB>weight" or a single
// id for an isolated node. Lines starting with '#' are comments.
func readEdges(r io.Reader, b *weft.Builder) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		switch len(fields) {
		case 1:
			b.AddNode(fields[0])
		case 2:
			b.AddEdge(fields[0], fields[1])
		case 3:
			w, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return fmt.Errorf("line %d: weight: %w", line, err)
			}
			b.AddWeightedEdge(fields[0], fields[1], w)
		default:
			return fmt.Errorf("line %d: expected 1 to 3 tab-separated fields, got %d", line, len(fields))
		}
	}
	return sc.Err()
}
