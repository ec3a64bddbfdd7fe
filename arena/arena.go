package arena

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
	"github.com/milk9111/fighter/prefabs"
)

var (
	ErrEmptyLayout  = errors.New("arena: empty layout")
	ErrRaggedLayout = errors.New("arena: rows differ in length")
	ErrBadTile      = errors.New("arena: unknown tile")
	ErrBadTileSize  = errors.New("arena: tile size must be positive")
	ErrSpawnBlocked = errors.New("arena: spawn overlaps solid ground")
	ErrOutOfBounds  = errors.New("arena: spawn outside the arena")
)

const (
	solidTile = '#'
	emptyTile = '.'
)

// Block is one solid tile. Border walls sit outside the layout, so their Row
// or Col is -1 or one past the last index.
type Block struct {
	Row, Col int
	BB       cp.BB
}

// Arena is a tile layout placed in world space. The bottom edge of the last
// row sits on y = 0 and the layout is centred on x = 0.
type Arena struct {
	Name     string
	TileSize float64
	Color    color.Color

	rows, cols int
	solid      []bool
	blocks     []Block
	walls      []Block
}

// FromSpec builds an arena from its prefab.
func FromSpec(spec prefabs.ArenaSpec) (*Arena, error) {
	a, err := New(spec.Name, spec.TileSize, spec.Rows, spec.Walls)
	if err != nil {
		return nil, err
	}
	if spec.Color != nil {
		a.Color = spec.Color.Color
	}
	return a, nil
}

// New parses rows of '#' (solid) and '.' (empty), top row first. With walls
// set, a ring of tiles encloses the layout from outside.
func New(name string, tileSize float64, rows []string, walls bool) (*Arena, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadTileSize, tileSize)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	a := &Arena{
		Name:     name,
		TileSize: tileSize,
		Color:    color.Gray{Y: 0x60},
		rows:     len(rows),
		cols:     len(rows[0]),
	}
	a.solid = make([]bool, a.rows*a.cols)
	for r, row := range rows {
		if len(row) != a.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedLayout, r, len(row), a.cols)
		}
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case solidTile:
				a.solid[r*a.cols+c] = true
			case emptyTile:
			default:
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrBadTile, row[c], r, c)
			}
		}
	}

	a.placeCells()
	if walls {
		a.addWalls()
	}
	return a, nil
}

// placeCells gives every solid cell its own block, in row-major order.
func (a *Arena) placeCells() {
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			if a.solid[r*a.cols+c] {
				a.blocks = append(a.blocks, a.cellBlock(r, c))
			}
		}
	}
}

// addWalls rings the layout with one tile of border on every side.
func (a *Arena) addWalls() {
	for c := -1; c <= a.cols; c++ {
		a.walls = append(a.walls, a.cellBlock(-1, c), a.cellBlock(a.rows, c))
	}
	for r := 0; r < a.rows; r++ {
		a.walls = append(a.walls, a.cellBlock(r, -1), a.cellBlock(r, a.cols))
	}
}

func (a *Arena) cellBlock(row, col int) Block {
	top := a.cellTop(row)
	left := a.cellLeft(col)
	return Block{
		Row: row,
		Col: col,
		BB:  cp.BB{L: left, B: top - a.TileSize, R: left + a.TileSize, T: top},
	}
}

func (a *Arena) cellLeft(col int) float64 {
	return (float64(col) - float64(a.cols)/2) * a.TileSize
}

func (a *Arena) cellTop(row int) float64 {
	return float64(a.rows-row) * a.TileSize
}

func (a *Arena) Rows() int { return a.rows }
func (a *Arena) Cols() int { return a.cols }

// Solid reports whether a cell is solid. Cells outside the layout are not.
func (a *Arena) Solid(row, col int) bool {
	if row < 0 || col < 0 || row >= a.rows || col >= a.cols {
		return false
	}
	return a.solid[row*a.cols+col]
}

// Blocks returns the layout tiles followed by any walls.
func (a *Arena) Blocks() []Block {
	out := make([]Block, 0, len(a.blocks)+len(a.walls))
	out = append(out, a.blocks...)
	return append(out, a.walls...)
}

// Bounds is the layout's world rectangle, excluding walls.
func (a *Arena) Bounds() cp.BB {
	return cp.BB{
		L: a.cellLeft(0),
		B: 0,
		R: a.cellLeft(a.cols),
		T: a.cellTop(0),
	}
}

// CellAt maps a world point to the cell containing it.
func (a *Arena) CellAt(x, y float64) (row, col int, ok bool) {
	b := a.Bounds()
	if !b.ContainsVect(cp.Vector{X: x, Y: y}) {
		return 0, 0, false
	}
	col = int((x - b.L) / a.TileSize)
	row = int((b.T - y) / a.TileSize)
	col = min(col, a.cols-1)
	row = min(row, a.rows-1)
	return row, col, true
}

// CheckSpawn verifies that a body placed at (x, y) lies inside the arena and
// clear of every block. Resting on a surface is allowed.
func (a *Arena) CheckSpawn(x, y float64, body hitbox.Rect) error {
	start, end := body.Start(), body.End()
	e := hitbox.Extent{
		MinX: x + start.X(),
		MaxX: x + end.X(),
		MinY: y + end.Y(),
		MaxY: y + start.Y(),
	}
	b := a.Bounds()
	if !b.ContainsVect(cp.Vector{X: e.MinX, Y: e.MinY}) || !b.ContainsVect(cp.Vector{X: e.MaxX, Y: e.MaxY}) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, e)
	}
	for _, blk := range a.Blocks() {
		if hitbox.Overlaps(e, extent(blk.BB)) {
			return fmt.Errorf("%w: %s against tile at row %d col %d", ErrSpawnBlocked, e, blk.Row, blk.Col)
		}
	}
	return nil
}

// Spawn creates one static tile entity per block.
func (a *Arena) Spawn(w *ecs.World, logger *zap.Logger) ([]ecs.Entity, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	blocks := a.Blocks()
	out := make([]ecs.Entity, 0, len(blocks))
	for _, blk := range blocks {
		rect, err := hitbox.NewRect(blk.BB.L, blk.BB.T, blk.BB.R-blk.BB.L, blk.BB.T-blk.BB.B)
		if err != nil {
			return out, fmt.Errorf("arena: tile at row %d col %d: %w", blk.Row, blk.Col, err)
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.StaticTileComponent.Kind(), &component.StaticTile{
			Box: hitbox.New(nil, rect, hitbox.KindTile),
			Row: blk.Row,
			Col: blk.Col,
		}); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	logger.Info("arena spawned",
		zap.String("name", a.Name),
		zap.Int("rows", a.rows),
		zap.Int("cols", a.cols),
		zap.Int("tiles", len(a.blocks)),
		zap.Int("walls", len(a.walls)),
	)
	return out, nil
}

func extent(bb cp.BB) hitbox.Extent {
	return hitbox.Extent{MinX: bb.L, MaxX: bb.R, MinY: bb.B, MaxY: bb.T}
}
