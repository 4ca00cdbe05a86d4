package leveldata

import (
	"math"
	"os"
	"testing"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/gamemath"
)

func near(a, b gamemath.Vec3) bool {
	return a.Dist(b) < 1e-9
}

func TestLoadArena(t *testing.T) {
	arena, err := LoadArena(os.DirFS("testdata"), "duel.tmx")
	if err != nil {
		t.Fatal(err)
	}

	if arena.Name != "duel" {
		t.Errorf("name %q", arena.Name)
	}
	if want := (gamemath.Bounds{MaxX: 20, MaxZ: 15}); arena.Bounds != want {
		t.Errorf("bounds %+v, want %+v", arena.Bounds, want)
	}
	if arena.MapWidth != 320 || arena.MapHeight != 240 {
		t.Errorf("map size %dx%d", arena.MapWidth, arena.MapHeight)
	}

	wantObstacles := []gamemath.AABB{
		{Min: gamemath.V3(14, 0, 3), Max: gamemath.V3(16, 1, 4)},
		{Min: gamemath.V3(5, 0, 7), Max: gamemath.V3(10, 3, 8)},
		{Min: gamemath.V3(10, 0, 10), Max: gamemath.V3(12, 2.5, 11)},
	}
	if len(arena.Obstacles) != len(wantObstacles) {
		t.Fatalf("obstacles %+v", arena.Obstacles)
	}
	for i, want := range wantObstacles {
		got := arena.Obstacles[i]
		if !near(got.Min, want.Min) || !near(got.Max, want.Max) {
			t.Errorf("obstacle %d = %+v, want %+v", i, got, want)
		}
	}

	if len(arena.Covers) != 2 {
		t.Fatalf("covers %+v", arena.Covers)
	}
	half := arena.Covers[0]
	if !near(half.Position, gamemath.V3(6, 0, 9)) || half.Height != components.CoverHalf || half.Quality != 0.8 {
		t.Errorf("half cover %+v", half)
	}
	if math.Abs(half.Normal.Z+1) > 1e-9 || math.Abs(half.Normal.X) > 1e-9 {
		t.Errorf("half cover normal %+v, want -Z", half.Normal)
	}
	full := arena.Covers[1]
	if !near(full.Position, gamemath.V3(12, 0, 10)) || full.Height != components.CoverFull || full.Quality != DefaultCoverQuality {
		t.Errorf("full cover %+v", full)
	}

	wantSpawns := []gamemath.Vec3{gamemath.V3(1, 0, 1), gamemath.V3(18, 0, 13)}
	if len(arena.Spawns) != 2 || !near(arena.Spawns[0], wantSpawns[0]) || !near(arena.Spawns[1], wantSpawns[1]) {
		t.Errorf("spawns %+v, want %+v", arena.Spawns, wantSpawns)
	}
}

func TestLoadArenaMissing(t *testing.T) {
	if _, err := LoadArena(os.DirFS("testdata"), "nope.tmx"); err == nil {
		t.Fatal("expected an error for a missing map")
	}
}

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := LoadAllLevels(os.DirFS("."), "testdata")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "duel" || levels["duel"] == nil {
		t.Fatalf("names %v", names)
	}

	if _, _, err := LoadAllLevels(os.DirFS("."), "missing"); err == nil {
		t.Fatal("expected an error for a directory without maps")
	}
}

func TestDefaultArena(t *testing.T) {
	a := Default()
	if len(a.Spawns) < 2 {
		t.Fatal("default arena needs two spawns")
	}
	for _, s := range a.Spawns {
		for _, o := range a.Obstacles {
			if o.Contains(s) {
				t.Errorf("spawn %+v inside obstacle %+v", s, o)
			}
		}
	}
	for _, c := range a.Covers {
		if c.Quality <= 0 || c.Quality > 1 || math.Abs(c.Normal.Len()-1) > 1e-9 {
			t.Errorf("bad cover %+v", c)
		}
	}
}
