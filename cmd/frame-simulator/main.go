// frame-simulator feeds synthetic dislocation frames to a running dislotrace
// daemon, for exercising the classification pipeline end to end without a
// host analysis package.
package main

import (
	"flag"
	"log"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tsandell/dislotrace/internal/types"
	"github.com/tsandell/dislotrace/pkg/geom"
)

const defaultInterval = 2 * time.Second

// The 1/2<110> Burgers vector family of an fcc lattice.
var burgersFamily = []geom.Vec3{
	{0.5, 0.5, 0},
	{0.5, -0.5, 0},
	{0.5, 0, 0.5},
	{0.5, 0, -0.5},
	{0, 0.5, 0.5},
	{0, 0.5, -0.5},
}

func main() {
	addr := flag.String("addr", "localhost:7420", "Address of the dislotrace frame ingest listener")
	interval := flag.Duration("interval", defaultInterval, "Delay between frames")
	segments := flag.Int("segments", 8, "Segments per frame")
	frames := flag.Int("frames", 0, "Number of frames to send (0 = until interrupted)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	conn, err := net.DialTimeout("tcp", *addr, 10*time.Second)
	if err != nil {
		log.Fatalf("could not connect to %s: %v", *addr, err)
	}
	defer conn.Close()
	log.Printf("connected to %s", *addr)

	rng := rand.New(rand.NewSource(*seed))
	enc := msgpack.NewEncoder(conn)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for index := 0; ; index++ {
		if *frames > 0 && index >= *frames {
			log.Printf("sent %d frames, exiting", index)
			return
		}

		frame := makeFrame(rng, index, *segments)
		if err := enc.Encode(frame); err != nil {
			log.Fatalf("could not send frame %d: %v", index, err)
		}
		log.Printf("sent frame %d (%d segments)", index, len(frame.Segments))

		select {
		case <-ticker.C:
		case <-sigs:
			log.Printf("interrupted, exiting")
			return
		}
	}
}

// makeFrame builds a frame of random-walk dislocation lines. Each line's
// walk is biased along or across its Burgers vector so the frames contain a
// mix of screw, edge, and mixed spans.
func makeFrame(rng *rand.Rand, index, segments int) *types.Frame {
	frame := &types.Frame{Index: index}

	for i := 0; i < segments; i++ {
		b := burgersFamily[rng.Intn(len(burgersFamily))]
		points := []geom.Vec3{randomPoint(rng, 50)}

		n := 3 + rng.Intn(8)
		for j := 0; j < n; j++ {
			prev := points[len(points)-1]
			step := randomStep(rng, b)
			points = append(points, geom.Vec3{prev[0] + step[0], prev[1] + step[1], prev[2] + step[2]})
		}

		frame.Segments = append(frame.Segments, types.Segment{Points: points, Burgers: b})
	}

	return frame
}

func randomPoint(rng *rand.Rand, extent float64) geom.Vec3 {
	return geom.Vec3{
		rng.Float64() * extent,
		rng.Float64() * extent,
		rng.Float64() * extent,
	}
}

func randomStep(rng *rand.Rand, b geom.Vec3) geom.Vec3 {
	// Mostly follow the Burgers direction, with transverse jitter
	scale := 0.5 + rng.Float64()
	jitter := rng.Float64()
	return geom.Vec3{
		b[0]*scale + (rng.Float64()-0.5)*jitter,
		b[1]*scale + (rng.Float64()-0.5)*jitter,
		b[2]*scale + (rng.Float64()-0.5)*jitter,
	}
}
