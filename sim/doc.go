// Package sim runs the tag's command core on the host.
//
// Engine stands in for the RF layer: it copies reader commands into the
// shared buffers and invokes the dispatcher's callbacks. Reader wraps an
// engine and a dispatcher behind the same interface a programmer uses for a
// real reader, so images can be installed and inspected without hardware.
//
//	r := sim.NewReader(sim.WithReadOnly(tag.Region{Name: "bsl", Start: 0x1000, End: 0x17FF}))
//	err := programmer.New(r).Program(ctx, img)
//	h, _ := r.Handoff()
package sim
