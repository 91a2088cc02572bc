package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// cubeOBJ has 8 corner positions and one normal per face, so no corner can be
// shared between faces: 24 unique vertices, 12 triangles.
const cubeOBJ = `o Cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
vn 0 0 -1
vn 0 0 1
vn -1 0 0
vn 1 0 0
vn 0 -1 0
vn 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
%MTL%
f 1/1/1 4/2/1 3/3/1 2/4/1
f 5/1/2 6/2/2 7/3/2 8/4/2
f 1/1/3 5/2/3 8/3/3 4/4/3
%MTL2%
f 2/1/4 3/2/4 7/3/4 6/4/4
f 1/1/5 2/2/5 6/3/5 5/4/5
f 4/1/6 8/2/6 7/3/6 3/4/6
`

const cubeMTL = `newmtl red
Kd 1 0 0
newmtl blue
Kd 0 0 1
`

func plainCube() string {
	return strings.NewReplacer("%MTL%\n", "", "%MTL2%\n", "").Replace(cubeOBJ)
}

func twoMaterialCube() string {
	return "mtllib cube.mtl\n" + strings.NewReplacer("%MTL%", "usemtl red", "%MTL2%", "usemtl blue").Replace(cubeOBJ)
}

// writeModelFile writes content into dir/name and returns the path.
func writeModelFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
