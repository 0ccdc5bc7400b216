package mutations

import (
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// StreamingSplitName is the name of the streaming-split strategy.
const StreamingSplitName = "streaming-split"

// Streamer is a codec whose state can absorb a chunk of input ahead of the
// final invocation.
type Streamer[S, I any] interface {
	Codec[S, I]
	Update(state S, chunk []byte) S
}

type streamingSplit[S, I any] struct {
	streamer Streamer[S, I]
}

// StreamingSplit feeds the base input as two sequential chunks [0:k] and
// [k:n] for every k in [0, n], and expects each output to equal the one-shot
// reference.
func StreamingSplit[S, I any](streamer Streamer[S, I]) Strategy[S, I] {
	return &streamingSplit[S, I]{streamer: streamer}
}

func (s *streamingSplit[S, I]) Name() string {
	return StreamingSplitName
}

func (s *streamingSplit[S, I]) Bind(base I) Cursor[S, I] {
	return newCursor(base, s.size, s.step)
}

func (s *streamingSplit[S, I]) size(base I) int {
	return len(s.streamer.SerializeInput(base)) + 1
}

func (s *streamingSplit[S, I]) step(base I, pos int) Mutant[S, I] {
	data := s.streamer.SerializeInput(base)

	head := make([]byte, pos)
	copy(head, data[:pos])

	tail := make([]byte, len(data)-pos)
	copy(tail, data[pos:])

	return Mutant[S, I]{
		State:    s.streamer.Update(s.streamer.InitialState(), head),
		Input:    s.streamer.RestoreInput(tail),
		Relation: m.Equal(),
	}
}
