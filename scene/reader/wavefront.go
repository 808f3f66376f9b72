package reader

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/reikx/ascia/log"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/types"
)

var ErrNoGeometry = errors.New("reader: model defines no faces")

// The material used by faces that precede any usemtl statement.
var defaultMaterial = scene.LambertWithShadow(types.ColorRGB{R: 0.7, G: 0.7, B: 0.7}, 0)

// wavefrontReader turns a wavefront obj file into a Local scene subtree. Each
// o/g statement starts a child node; faces are fan-triangulated into polygons.
//
// Besides the standard statements the reader understands a "light x y z"
// extension which attaches a default point light at the given position.
type wavefrontReader struct {
	logger log.Logger

	// The parsed model.
	root *scene.Node[scene.Local]

	// The node receiving faces; root until an object is declared.
	curNode *scene.Node[scene.Local]

	materials   map[string]scene.Material
	curMaterial scene.Material

	vertexList []types.Vec3
	faceCount  int
	lightCount int

	// An error stack that provides additional error information when
	// scene files include other files (models, mat libs e.t.c)
	errStack []string

	// Locations of the files currently being parsed.
	open map[string]bool
}

// Create a new reader for a model whose root node is tagged with tag.
func newWavefrontReader(tag string) *wavefrontReader {
	root := scene.NewNode[scene.Local](tag)
	return &wavefrontReader{
		logger:      log.New("reader"),
		root:        root,
		curNode:     root,
		materials:   make(map[string]scene.Material),
		curMaterial: defaultMaterial,
		open:        make(map[string]bool),
	}
}

// Read a wavefront model from a local path or an http(s) URL. The returned
// node is tagged with the file name minus its extension.
func ReadModel(pathToModel string) (*scene.Node[scene.Local], error) {
	res, err := newResource(pathToModel, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newWavefrontReader(res.Name()).Read(res)
}

// Read model definition.
func (r *wavefrontReader) Read(res *resource) (*scene.Node[scene.Local], error) {
	r.logger.Infof("parsing model from %s", res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}
	if r.faceCount == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoGeometry, res.Path())
	}

	r.logger.Infof(
		"parsed %d faces into %d polygons and %d light(s) in %d ms",
		r.faceCount,
		len(r.root.CollectPolygons()),
		r.lightCount,
		time.Since(start).Milliseconds(),
	)
	return r.root, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = strings.Trim(
			fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	} else {
		errMsg = strings.Trim(
			fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	}

	return errors.New(errMsg)
}

// Push a frame to the error stack.
func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Select the node that receives the following faces. Statements reusing a
// name append to the existing node.
func (r *wavefrontReader) selectNode(name string) {
	if node := r.root.Child(name); node != nil {
		r.curNode = node
		return
	}
	r.curNode = scene.NewNode[scene.Local](name)
	r.root.AddChild(r.curNode)
}

// Parse wavefront object scene format.
func (r *wavefrontReader) parse(res *resource) error {
	r.open[res.location()] = true
	defer delete(r.open, res.location())

	lineNum := 0

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call", "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, "unsupported syntax for '%s'; expected 1 argument; got %d", lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := newResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			if r.open[incRes.location()] {
				incRes.Close()
				return r.emitError(res.Path(), lineNum, "circular reference to '%s'", incRes.Path())
			}

			switch lineTokens[0] {
			case "call":
				err = r.parse(incRes)
			case "mtllib":
				err = r.parseMaterials(incRes)
			}
			incRes.Close()

			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, "unsupported syntax for 'usemtl'; expected 1 argument; got %d", len(lineTokens)-1)
			}

			mat, exists := r.materials[lineTokens[1]]
			if !exists {
				return r.emitError(res.Path(), lineNum, "undefined material with name '%s'", lineTokens[1])
			}
			r.curMaterial = mat
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, "unsupported syntax for '%s'; expected 1 argument for object name; got %d", lineTokens[0], len(lineTokens)-1)
			}
			r.selectNode(lineTokens[1])
		case "f":
			polygons, err := r.parseFace(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.curNode.Polygons = append(r.curNode.Polygons, polygons...)
			r.faceCount++
		case "light":
			pos, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.lightCount++
			light := scene.NewNode[scene.Local](fmt.Sprintf("light-%d", r.lightCount))
			light.Position = pos
			light.SetAttribute(scene.NewLightAttribute(scene.DefaultPointLight()))
			r.root.AddChild(light)
		}
	}

	return scanner.Err()
}

// Parse face definition. Each face lists at least 3 vertex arguments. Each
// argument is comprised of 1, 2 or 3 indices separated by a slash character:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Only the vertex index is used. Indices start from 1 and may be negative to
// indicate an offset off the end of the vertex list. Faces with more than 3
// vertices are split into a triangle fan around the first vertex.
func (r *wavefrontReader) parseFace(lineTokens []string) ([]scene.Polygon[scene.Local], error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf("unsupported syntax for 'f'; expected at least 3 arguments; got %d", len(lineTokens)-1)
	}

	vertices := make([]types.Vec3, 0, len(lineTokens)-1)
	for arg, token := range lineTokens[1:] {
		vTokens := strings.Split(token, "/")

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %w", arg, err)
		}
		vertices = append(vertices, r.vertexList[vOffset])
	}

	polygons := make([]scene.Polygon[scene.Local], 0, len(vertices)-2)
	for i := 1; i+1 < len(vertices); i++ {
		polygons = append(polygons, scene.NewPolygon[scene.Local](vertices[0], vertices[i], vertices[i+1], r.curMaterial))
	}
	return polygons, nil
}

// Parse a wavefront material library. Kd sets the material color and illum
// selects the shading model: 0 is flat, 1 is lambert and anything else is
// lambert with shadows. The non-standard priority statement sets the
// material priority used when supersampling.
func (r *wavefrontReader) parseMaterials(res *resource) error {
	lineNum := 0

	scanner := bufio.NewScanner(res)

	var (
		matName string
		defined bool
		color   types.ColorRGB
		illum   = 2
		prio    uint32
	)

	flush := func() {
		if !defined {
			return
		}
		var mat scene.Material
		switch illum {
		case 0:
			mat = scene.Flat(color, prio)
		case 1:
			mat = scene.Lambert(color, prio)
		default:
			mat = scene.LambertWithShadow(color, prio)
		}
		r.materials[matName] = mat
	}

	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		if lineTokens[0] == "newmtl" {
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, "unsupported syntax for 'newmtl'; expected 1 argument; got %d", len(lineTokens)-1)
			}
			flush()

			matName = lineTokens[1]
			if _, exists := r.materials[matName]; exists {
				return r.emitError(res.Path(), lineNum, "material '%s' already defined", matName)
			}
			defined, color, illum, prio = true, types.ColorRGB{R: 0.7, G: 0.7, B: 0.7}, 2, 0
			continue
		}

		if !defined {
			return r.emitError(res.Path(), lineNum, "got '%s' without a 'newmtl'", lineTokens[0])
		}

		var err error
		switch lineTokens[0] {
		case "Kd":
			var kd types.Vec3
			kd, err = parseVec3(lineTokens)
			color = types.ColorRGB{R: kd[0], G: kd[1], B: kd[2]}
		case "illum":
			var v int64
			if v, err = parseInt(lineTokens); err == nil {
				illum = int(v)
			}
		case "priority":
			var v int64
			if v, err = parseInt(lineTokens); err == nil {
				if v < 0 {
					err = fmt.Errorf("priority must not be negative; got %d", v)
				}
				prio = uint32(v)
			}
		}

		// Report any errors
		if err != nil {
			return r.emitError(res.Path(), lineNum, "%s", err.Error())
		}
	}
	flush()

	return scanner.Err()
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = int(index - 1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse an integer scalar value.
func parseInt(lineTokens []string) (int64, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf("unsupported syntax for '%s'; expected 1 argument; got %d", lineTokens[0], len(lineTokens)-1)
	}

	return strconv.ParseInt(lineTokens[1], 10, 32)
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
