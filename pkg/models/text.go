package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/taigrr/facet/pkg/math3d"
)

// TextDirectives holds the per-file flags found while parsing a text mesh.
type TextDirectives struct {
	RepairOrientation bool // A line starting with '!' was present
	Skipped           int  // Malformed lines that were ignored
}

// LoadText reads a text mesh file.
func LoadText(path string, logger *log.Logger) (*Mesh, TextDirectives, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, TextDirectives{}, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	return ParseText(f, filepath.Base(path), logger)
}

// ParseText parses the plain-text triangle format: one triangle per line as
// nine numbers (x1 y1 z1 x2 y2 z2 x3 y3 z3). Blank lines and lines starting
// with '#' are ignored, a line starting with '!' requests orientation repair,
// and malformed lines are skipped and logged at debug level.
func ParseText(r io.Reader, name string, logger *log.Logger) (*Mesh, TextDirectives, error) {
	logger = loggerOrDiscard(logger)

	var (
		dir  TextDirectives
		tris []Triangle
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0

	for sc.Scan() {
		lineNumber++
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "!"):
			dir.RepairOrientation = true
			continue
		}

		v, ok := parseTriangleLine(line)
		if !ok {
			dir.Skipped++
			logger.Debug("invalid triangle format", "mesh", name, "line", lineNumber, "text", line)
			continue
		}
		tris = append(tris, NewTriangle(v[0], v[1], v[2]))
	}
	if err := sc.Err(); err != nil {
		return nil, dir, fmt.Errorf("read mesh %s: %w", name, err)
	}

	return NewMesh(name, tris), dir, nil
}

func parseTriangleLine(line string) ([3]math3d.Vec3, bool) {
	var v [3]math3d.Vec3

	fields := strings.Fields(line)
	if len(fields) < 9 {
		return v, false
	}

	var n [9]float64
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v, false
		}
		n[i] = f
	}

	for i := range v {
		v[i] = math3d.V3(n[i*3], n[i*3+1], n[i*3+2])
	}
	return v, true
}

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
