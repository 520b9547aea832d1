package physics

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/memmaker/voxelbody/engine/util"
)

// TickRecord is one row of a simulation trace.
type TickRecord struct {
	Tick     int     `csv:"tick"`
	PosX     float32 `csv:"pos_x"`
	PosY     float32 `csv:"pos_y"`
	PosZ     float32 `csv:"pos_z"`
	VelX     float32 `csv:"vel_x"`
	VelY     float32 `csv:"vel_y"`
	VelZ     float32 `csv:"vel_z"`
	OnGround bool    `csv:"on_ground"`
}

// Tracer records the state of a body after each tick for later analysis.
type Tracer struct {
	records []*TickRecord
}

func NewTracer() *Tracer {
	return &Tracer{}
}

func (t *Tracer) Record(tick int, body *Body) {
	pos := body.Position()
	vel := body.Velocity()
	t.records = append(t.records, &TickRecord{
		Tick:     tick,
		PosX:     pos.X(),
		PosY:     pos.Y(),
		PosZ:     pos.Z(),
		VelX:     vel.X(),
		VelY:     vel.Y(),
		VelZ:     vel.Z(),
		OnGround: body.OnGround(),
	})
}

func (t *Tracer) Records() []*TickRecord {
	return t.records
}

// WriteCSV dumps the recorded trace to a csv file.
func (t *Tracer) WriteCSV(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not create trace file")
	}
	defer file.Close()

	if err := gocsv.Marshal(t.records, file); err != nil {
		return errors.Wrap(err, "could not write trace records")
	}
	util.LogSystemInfo(fmt.Sprintf("[Tracer] Wrote %d tick records to %s", len(t.records), filename))
	return nil
}
