package weather

import "context"

// Origin tells where a payload came from.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginLocal  Origin = "local"
)

// Payload is the raw yearly record file obtained by a Source.
type Payload struct {
	Data []byte
	// Format is the format the bytes were served or stored as. The parser
	// still detects the actual encoding itself.
	Format Format
	Origin Origin
}

// Source obtains the raw payload for a year, remote first with local fallback.
type Source interface {
	Resolve(ctx context.Context, year int) (Payload, error)
}
