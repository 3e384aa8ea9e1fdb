package idgen

import (
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator produces the run id attached to every replay's log lines.
// ULIDs sort by creation time, so runs started in the same millisecond still
// order correctly thanks to the monotonic entropy source.
type ULIDGenerator struct {
	now     func() time.Time
	entropy io.Reader
}

// NewULIDGenerator returns a generator backed by the wall clock and
// ulid.DefaultEntropy, which is safe for concurrent use.
func NewULIDGenerator() *ULIDGenerator {
	return NewULIDGeneratorWithSource(time.Now, ulid.DefaultEntropy())
}

// NewULIDGeneratorWithSource pins the clock and entropy source. The caller
// must serialize Generate when entropy is not safe for concurrent use.
func NewULIDGeneratorWithSource(now func() time.Time, entropy io.Reader) *ULIDGenerator {
	return &ULIDGenerator{now: now, entropy: entropy}
}

// Generate returns a new run id in canonical 26-character form.
func (g *ULIDGenerator) Generate() string {
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
