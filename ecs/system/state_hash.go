package system

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
)

// StateHash fingerprints the simulated state: every entity's position,
// velocity and health in slot order. Two runs fed the same inputs must
// produce the same hash on every tick.
func StateHash(w *ecs.World) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, e := range ecs.Entities(w) {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e))
		if obj, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			p := obj.Position()
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X()))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y()))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(obj.Scale().X()))
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.X))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Y))
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(h.Current)))
		}
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
