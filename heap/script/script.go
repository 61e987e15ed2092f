// Package script parses and replays allocation trace scripts against a heap.
//
// A script is a line-oriented text format. Each line is one request:
//
//	a <id> <size>   allocate <size> bytes and bind the result to <id>
//	r <id> <size>   resize the block bound to <id> to <size> bytes
//	f <id>          release the block bound to <id>
//
// Blank lines and lines starting with '#' are ignored. IDs are small
// non-negative integers assigned by the script author; a freed ID may be
// reused by a later allocation.
package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OpKind identifies one request type.
type OpKind byte

const (
	OpAlloc   OpKind = 'a'
	OpRealloc OpKind = 'r'
	OpFree    OpKind = 'f'
)

// Op is one parsed request.
type Op struct {
	Kind OpKind
	ID   int
	Size int // unused for OpFree
	Line int // 1-based source line, for diagnostics
}

// Script is a parsed trace.
type Script struct {
	Name string
	Ops  []Op
}

// Parse reads a trace from r. name is used in diagnostics only.
func Parse(r io.Reader, name string) (*Script, error) {
	s := &Script{Name: name}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		op, err := parseLine(text, line)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", name, err)
		}
		s.Ops = append(s.Ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return s, nil
}

// ParseFile reads a trace from the file at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

func parseLine(text string, line int) (Op, error) {
	fields := strings.Fields(text)
	kind := OpKind(0)
	if len(fields[0]) == 1 {
		kind = OpKind(fields[0][0])
	}

	switch kind {
	case OpAlloc, OpRealloc:
		if len(fields) != 3 {
			return Op{}, fmt.Errorf("line %d: %q wants <id> <size>", line, fields[0])
		}
		id, err := parseField(fields[1], "id", line)
		if err != nil {
			return Op{}, err
		}
		size, err := parseField(fields[2], "size", line)
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: kind, ID: id, Size: size, Line: line}, nil
	case OpFree:
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("line %d: %q wants <id>", line, fields[0])
		}
		id, err := parseField(fields[1], "id", line)
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: OpFree, ID: id, Line: line}, nil
	default:
		return Op{}, fmt.Errorf("line %d: unknown request %q", line, fields[0])
	}
}

func parseField(s, what string, line int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("line %d: bad %s %q", line, what, s)
	}
	return v, nil
}
