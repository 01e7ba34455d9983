// Package engine distributes the parameter-space search across workers
// and collects, ranks, and truncates the resulting hits.
package engine

import (
	"github.com/solatis/pipecrack/internal/pipeline"
	"github.com/solatis/pipecrack/internal/scoring"
	"github.com/solatis/pipecrack/internal/types"
)

// Worker processes contiguous chunks of the parameter index space. Each
// worker owns its executor and a reusable digit buffer, so decoding an
// index into its parameter tuple does not allocate. Not safe for concurrent use; the
// orchestrator gives each goroutine its own Worker.
type Worker struct {
	exec      *pipeline.Executor
	radix     []int
	scorer    *scoring.Scorer
	threshold float64
	scratch   []int
}

// NewWorker builds a worker over immutable run state.
func NewWorker(exec *pipeline.Executor, radix []int, scorer *scoring.Scorer, threshold float64) *Worker {
	return &Worker{
		exec:      exec,
		radix:     radix,
		scorer:    scorer,
		threshold: threshold,
		scratch:   make([]int, len(radix)),
	}
}

// ChunkResult is the outcome of one processed chunk. Hits are in
// ascending index order within the chunk.
type ChunkResult struct {
	Attempts int64
	Hits     []types.Hit
}

// ProcessChunk decodes and executes every index in [lo, hi), scoring the
// final payload of each completed tuple and recording those at or above
// the threshold.
func (w *Worker) ProcessChunk(lo, hi int64) ChunkResult {
	var hits []types.Hit
	for x := lo; x < hi; x++ {
		w.scratch = pipeline.Unrank(x, w.radix, w.scratch)
		payload, meta, ok := w.exec.Run(w.scratch)
		if !ok {
			continue
		}
		score := w.scorer.Score(payload.Raw())
		if score >= w.threshold {
			hits = append(hits, types.Hit{Score: score, Meta: meta.Clone()})
		}
	}
	return ChunkResult{Attempts: hi - lo, Hits: hits}
}
