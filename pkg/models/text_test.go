package models

import (
	"strings"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		triangles int
		skipped   int
		repair    bool
	}{
		{"single", "0 0 5 1 0 5 0 1 5\n", 1, 0, false},
		{"comments and blanks", "# header\n\n0 0 0 1 0 0 0 1 0\n   # indented comment\n", 1, 0, false},
		{"repair directive", "!\n0 0 0 1 0 0 0 1 0\n1 1 1 2 1 1 1 2 1\n", 2, 0, true},
		{"repair directive with text", "! fix me\n0 0 0 1 0 0 0 1 0\n", 1, 0, true},
		{"too few numbers", "0 0 0 1 0 0 0 1\n0 0 0 1 0 0 0 1 0\n", 1, 1, false},
		{"not a number", "0 0 zero 1 0 0 0 1 0\n", 0, 1, false},
		{"extra trailing fields", "0 0 0 1 0 0 0 1 0 extra\n", 1, 0, false},
		{"tabs and crlf", "0\t0\t0\t1\t0\t0\t0\t1\t0\r\n", 1, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, dir, err := ParseText(strings.NewReader(tc.input), tc.name, nil)
			if err != nil {
				t.Fatalf("ParseText: %v", err)
			}
			if mesh.TriangleCount() != tc.triangles {
				t.Errorf("triangles = %d, want %d", mesh.TriangleCount(), tc.triangles)
			}
			if dir.Skipped != tc.skipped {
				t.Errorf("skipped = %d, want %d", dir.Skipped, tc.skipped)
			}
			if dir.RepairOrientation != tc.repair {
				t.Errorf("repair = %v, want %v", dir.RepairOrientation, tc.repair)
			}
		})
	}
}

func TestParseTextVertexOrder(t *testing.T) {
	mesh, _, err := ParseText(strings.NewReader("1 2 3 4 5 6 7 8 9.5\n"), "order", nil)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}

	tri := mesh.Triangles[0]
	if tri.A() != math3d.V3(1, 2, 3) || tri.B() != math3d.V3(4, 5, 6) || tri.C() != math3d.V3(7, 8, 9.5) {
		t.Errorf("vertices = %v %v %v", tri.A(), tri.B(), tri.C())
	}
	if mesh.Name != "order" {
		t.Errorf("name = %q", mesh.Name)
	}
}

func TestLoadTextMissingFile(t *testing.T) {
	if _, _, err := LoadText("/nonexistent/mesh.txt", nil); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
