package leveldata

import (
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

// LoadArena parses a TMX file into arena geometry. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
//
// Recognized content:
//   - tile layer "wg-tiles": every tile is a wall, its height taken from the
//     tileset tile property "height"
//   - object group "Obstacles": rectangles with an optional "height"
//   - object group "Cover": objects with "facing" (degrees, 0 = +Z),
//     "height" ("full" or "half") and "quality"
//   - object group "Spawns": points ordered by "spawnIndex"
func LoadArena(fsys fs.FS, tmxPath string) (*Arena, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	toWorld := func(x, y float64) gamemath.Vec3 {
		return gamemath.V3(x/tileW, 0, y/tileH)
	}

	data := &Arena{
		Name:      strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
		Bounds: gamemath.Bounds{
			MaxX: float64(levelMap.Width),
			MaxZ: float64(levelMap.Height),
		},
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != "wg-tiles" {
			continue
		}
		data.Obstacles = append(data.Obstacles, wallRuns(levelMap, layer)...)
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Obstacles":
			for _, o := range og.Objects {
				h := o.Properties.GetFloat("height")
				if h <= 0 {
					h = DefaultObstacleHeight
				}
				lo := toWorld(o.X, o.Y)
				hi := toWorld(o.X+o.Width, o.Y+o.Height)
				hi.Y = h
				data.Obstacles = append(data.Obstacles, gamemath.AABB{Min: lo, Max: hi})
			}
		case "Cover":
			for _, o := range og.Objects {
				data.Covers = append(data.Covers, parseCover(o, toWorld))
			}
		case "Spawns", "PlayerSpawn":
			type indexed struct {
				pos   gamemath.Vec3
				index int
			}
			var spawns []indexed
			for _, o := range og.Objects {
				spawns = append(spawns, indexed{toWorld(o.X, o.Y), o.Properties.GetInt("spawnIndex")})
			}
			sort.SliceStable(spawns, func(i, j int) bool {
				return spawns[i].index < spawns[j].index
			})
			for _, s := range spawns {
				data.Spawns = append(data.Spawns, s.pos)
			}
		}
	}

	return data, nil
}

// wallRuns merges horizontal runs of equal-height tiles into single boxes.
func wallRuns(levelMap *tiled.Map, layer *tiled.Layer) []gamemath.AABB {
	var out []gamemath.AABB
	for y := 0; y < levelMap.Height; y++ {
		start, runHeight := -1, 0.0
		flush := func(end int) {
			if start < 0 {
				return
			}
			out = append(out, gamemath.AABB{
				Min: gamemath.V3(float64(start), 0, float64(y)),
				Max: gamemath.V3(float64(end), runHeight, float64(y+1)),
			})
			start = -1
		}
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				flush(x)
				continue
			}

			h := DefaultWallHeight
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				if v := tilesetTile.Properties.GetFloat("height"); v > 0 {
					h = v
				}
			}
			if start >= 0 && h != runHeight {
				flush(x)
			}
			if start < 0 {
				start, runHeight = x, h
			}
		}
		flush(levelMap.Width)
	}
	return out
}

func parseCover(o *tiled.Object, toWorld func(x, y float64) gamemath.Vec3) components.Cover {
	pos := toWorld(o.X+o.Width/2, o.Y+o.Height/2)
	facing := o.Properties.GetFloat("facing") * math.Pi / 180
	c := components.Cover{
		Position: pos,
		Normal:   gamemath.V3(math.Sin(facing), 0, math.Cos(facing)),
		Quality:  o.Properties.GetFloat("quality"),
	}
	if strings.EqualFold(o.Properties.GetString("height"), "half") {
		c.Height = components.CoverHalf
	}
	if c.Quality <= 0 {
		c.Quality = DefaultCoverQuality
	}
	c.Quality = gamemath.Clamp01(c.Quality)
	return c
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each
// arena, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Arena, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Arena, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
