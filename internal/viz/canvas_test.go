package viz

import "testing"

func TestCanvasSetSubpixels(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("top-left dot: got %#x, want 0x2801", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0] != 0x2801|0x80 {
		t.Errorf("bottom-right dot of same cell: got %#x", c.Grid[0][0])
	}

	c.Set(5, 9)
	if c.Grid[2][2] != 0x2800|0x10 {
		t.Errorf("cell (2,2): got %#x, want %#x", c.Grid[2][2], 0x2800|0x10)
	}
}

func TestCanvasUnset(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(1, 0)
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2808 {
		t.Errorf("after unset: got %#x, want 0x2808", c.Grid[0][0])
	}
	c.Unset(1, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("fully cleared cell: got %#x, want 0x2800", c.Grid[0][0])
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)
	c.Unset(-3, -3)
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) modified by out-of-bounds draw", i, j)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.DrawLine(0, 0, 5, 11)
	c.Clear()
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(8, 8)
	c.DrawLine(2, 3, 13, 27)
	if c.Grid[0][1]&0x40 == 0 {
		t.Error("line start not set")
	}
	if c.Grid[6][6]&0x80 == 0 {
		t.Error("line end not set")
	}
}

func TestDrawCircleSymmetry(t *testing.T) {
	c := NewCanvas(16, 8)
	cx, cy, r := 16, 16, 10
	c.DrawCircle(cx, cy, r)

	cardinal := [][2]int{{cx + r, cy}, {cx - r, cy}, {cx, cy + r}, {cx, cy - r}}
	for _, pt := range cardinal {
		col, row := pt[0]/2, pt[1]/4
		if c.Grid[row][col] == 0x2800 {
			t.Errorf("cardinal point (%d,%d) not on circle", pt[0], pt[1])
		}
	}
	if c.Grid[cy/4][cx/2] != 0x2800 {
		t.Error("circle center should stay empty")
	}
}

func TestDrawCircleDegenerate(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawCircle(2, 2, 0)
	if c.Grid[0][1] == 0x2800 {
		t.Error("zero-radius circle should set its center")
	}
	c.Clear()
	c.DrawCircle(2, 2, -1)
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatal("negative radius should draw nothing")
			}
		}
	}
}

func TestFillCircleCoversInterior(t *testing.T) {
	c := NewCanvas(16, 8)
	cx, cy, r := 16, 16, 8
	c.FillCircle(cx, cy, r)
	for dy := -r / 2; dy <= r/2; dy++ {
		for dx := -r / 2; dx <= r/2; dx++ {
			x, y := cx+dx, cy+dy
			if c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) == 0 {
				t.Fatalf("interior pixel (%d,%d) not filled", x, y)
			}
		}
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(5, 3)
	s := c.String()
	lines := 0
	for _, r := range s {
		if r == '\n' {
			lines++
		}
	}
	if lines != 3 {
		t.Errorf("rendered %d lines, want 3", lines)
	}
}
