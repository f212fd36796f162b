package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// objCorner identifies a unique (position, UV) pairing from an OBJ face.
// Seam vertices in OBJ reuse a position with different vt references, so
// each distinct pairing becomes its own mesh vertex.
type objCorner struct {
	v, vt int
}

// ReadOBJ parses a Wavefront OBJ stream into a Mesh. Positions (v), texture
// coordinates (vt) and faces (f) are honored; faces with more than three
// corners are fan-triangulated. Each usemtl/o/g directive starts a new
// submesh. Normals, materials and everything else are ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		uvs       []mgl32.Vec2
	)
	corners := make(map[objCorner]int)

	m := &Mesh{}
	current := -1 // lazily created on the first face

	ensureSubmesh := func(name string) {
		// Reuse an empty trailing submesh instead of stacking group
		// directives into several empty ones.
		if current >= 0 && len(m.Submeshes[current].Indices) == 0 {
			if name != "" {
				m.Submeshes[current].Name = name
			}
			return
		}
		m.Submeshes = append(m.Submeshes, Submesh{Name: name})
		current = len(m.Submeshes) - 1
	}

	addCorner := func(c objCorner) int {
		if idx, ok := corners[c]; ok {
			return idx
		}
		idx := len(m.Positions)
		m.Positions = append(m.Positions, positions[c.v])
		if c.vt >= 0 {
			m.UVs = append(m.UVs, uvs[c.vt])
		} else {
			m.UVs = append(m.UVs, mgl32.Vec2{})
		}
		corners[c] = idx
		return idx
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 components", lineNo)
			}
			p, err := parseFloats3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj line %d: texture coordinate needs 2 components", lineNo)
			}
			u, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseFloat(fields[2], 32)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			uvs = append(uvs, mgl32.Vec2{float32(u), float32(v)})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 corners", lineNo)
			}
			if current < 0 {
				ensureSubmesh("default")
			}
			face := make([]int, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				c, err := parseCorner(spec, len(positions), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				face = append(face, addCorner(c))
			}
			// Fan triangulation for quads and n-gons.
			sub := &m.Submeshes[current]
			for i := 1; i+1 < len(face); i++ {
				sub.Indices = append(sub.Indices, face[0], face[i], face[i+1])
			}
		case "usemtl", "o", "g":
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			ensureSubmesh(name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadOBJ reads an OBJ mesh from disk.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening obj: %w", err)
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// parseCorner parses one face corner spec ("v", "v/vt", "v//vn" or
// "v/vt/vn") into zero-based indices. Negative OBJ indices count back from
// the end of the respective array. vt is -1 when absent.
func parseCorner(spec string, vCount, vtCount int) (objCorner, error) {
	parts := strings.Split(spec, "/")
	v, err := resolveIndex(parts[0], vCount)
	if err != nil {
		return objCorner{}, fmt.Errorf("face corner %q: %w", spec, err)
	}
	vt := -1
	if len(parts) > 1 && parts[1] != "" {
		vt, err = resolveIndex(parts[1], vtCount)
		if err != nil {
			return objCorner{}, fmt.Errorf("face corner %q: %w", spec, err)
		}
	}
	return objCorner{v: v, vt: vt}, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, fmt.Errorf("index %d out of range (1..%d)", n, count)
	}
}

func parseFloats3(fields []string) (mgl32.Vec3, error) {
	var out mgl32.Vec3
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return mgl32.Vec3{}, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
