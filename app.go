package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelbody/engine/util"
	"github.com/memmaker/voxelbody/engine/voxel"
	"github.com/memmaker/voxelbody/physics"
)

const tickDuration = 50 * time.Millisecond

func main() {
	configFile := flag.String("config", "", "yaml tuning file, overrides the built-in constants")
	mapFile := flag.String("map", "", "map file to load (.bin or .construction), generates a flat map if empty")
	traceFile := flag.String("trace", "trace.csv", "csv file for the per-tick trace")
	tickCount := flag.Int("ticks", 200, "number of simulation ticks to run")
	realtime := flag.Bool("realtime", false, "run at 20 ticks per second instead of as fast as possible")
	flag.Parse()

	tuning := physics.DefaultTuning()
	if *configFile != "" {
		var err error
		if tuning, err = physics.LoadTuning(*configFile); err != nil {
			util.LogIOError(fmt.Sprintf("[Main] %s", err.Error()))
			return
		}
	}

	voxelMap, spawn := loadOrGenerateMap(*mapFile)
	body := physics.NewBodyInMap(spawn, voxelMap, tuning)
	tracer := physics.NewTracer()

	util.LogSystemInfo(fmt.Sprintf("[Main] Simulating %d ticks from spawn %v", *tickCount, spawn))
	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(tickDuration)
		defer ticker.Stop()
	}
	for tick := 0; tick < *tickCount; tick++ {
		driveBody(body, tick)
		body.Step()
		tracer.Record(tick, body)
		if ticker != nil {
			<-ticker.C
		}
	}
	pos := body.Position()
	util.LogSystemInfo(fmt.Sprintf("[Main] Final position (%.3f, %.3f, %.3f), on ground: %v", pos.X(), pos.Y(), pos.Z(), body.OnGround()))

	if err := tracer.WriteCSV(*traceFile); err != nil {
		util.LogIOError(fmt.Sprintf("[Main] %s", err.Error()))
	}
}

// driveBody is the stand-in for a controller: drop in, walk, sprint, jump.
func driveBody(body *physics.Body, tick int) {
	switch {
	case tick < 40:
		// free fall onto the floor
	case tick < 100:
		body.Walk()
		body.MoveAngle(0, false)
	case tick < 160:
		body.Sprint()
		body.MoveAngle(90, false)
	default:
		body.MoveAngle(90, false)
		if body.OnGround() && tick%20 == 0 {
			body.Jump()
		}
	}
}

func loadOrGenerateMap(filename string) (*voxel.Map, mgl32.Vec3) {
	if filename != "" {
		if construction, err := voxel.LoadConstruction(filename); err == nil {
			m := voxel.NewMapFromConstruction(voxel.NewDefaultBlockLibrary(), construction)
			return m, spawnAbove(m)
		}
		m, err := voxel.NewMapFromFile(filename)
		if err != nil {
			util.LogIOError(fmt.Sprintf("[Main] could not load %s: %s, falling back to a generated map", filename, err.Error()))
			return generateMap()
		}
		return m, spawnAbove(m)
	}
	return generateMap()
}

func generateMap() (*voxel.Map, mgl32.Vec3) {
	m := voxel.NewMap(1, 1, 1)
	library := m.BlockLibrary()
	m.SetFloorAtHeight(8, library.NewBlockFromName("stone"))
	// an ice strip to show off the friction model
	for x := int32(10); x < 22; x++ {
		for z := int32(20); z < 28; z++ {
			m.SetBlock(x, 8, z, library.NewBlockFromName("ice"))
		}
	}
	m.SetRandomStuff(library.NewBlockFromName("dirt"), 40)
	return m, mgl32.Vec3{16, 14, 16}
}

func spawnAbove(m *voxel.Map) mgl32.Vec3 {
	// drop in at the first clear column near the map center
	center := mgl32.Vec3{16, 20, 16}
	for y := int32(31); y > 0; y-- {
		if m.IsSolidBlockAt(16, y, 16) {
			return mgl32.Vec3{16, float32(y) + 2, 16}
		}
	}
	return center
}
