package engine

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/solatis/pipecrack/internal/pipeline"
	"github.com/solatis/pipecrack/internal/scoring"
	"github.com/solatis/pipecrack/internal/types"
)

/*
 * Parallel orchestration.
 *
 * The index range [0, total) is split into fixed-size chunks; each chunk
 * is one task and is never subdivided. With one worker the tasks run
 * sequentially in the calling goroutine; otherwise a pool of worker
 * goroutines drains a task channel. All state shared with workers —
 * pipeline, dictionary, ciphertext, scoring tables — is immutable after
 * start; each completed task writes only its own result slot, and the
 * progress counters sit behind a mutex.
 *
 * Determinism: chunk results are merged in task order before the final
 * stable sort, so the ranked output is identical for any worker count.
 * Workers may finish out of order; only progress lines reflect that.
 *
 * There is no early exit at max_hits: a later chunk can outrank earlier
 * hits, so ranking happens once, after all chunks complete. A panicking
 * chunk is logged, counted, and treated as yielding zero hits; the run
 * continues.
 */

// Task is one contiguous chunk [Lo, Hi) of the parameter index space.
type Task struct {
	Lo, Hi int64
}

// Orchestrator runs the full search for one configuration. Fields are
// read-only during Run.
type Orchestrator struct {
	Stages        []string
	Ciphertext    string
	Keys          []string
	BifidAlphabet string
	Scorer        *scoring.Scorer
	Threshold     float64

	Workers       int
	ChunkSize     int
	ProgressEvery int
	MaxHits       int

	// Progress receives the [progress] lines; nil disables them.
	Progress io.Writer
}

// Results is the outcome of a completed run.
type Results struct {
	Attempts     int64
	HitCount     int         // hits at or above threshold, before truncation
	Hits         []types.Hit // ranked descending by score, truncated to MaxHits
	FailedChunks int
	Tasks        int
	Elapsed      time.Duration
}

// Tasks builds the chunk list covering [0, total) with no gaps or
// overlap. A non-positive chunk size is treated as 1.
func Tasks(total int64, chunkSize int) []Task {
	chunk := int64(chunkSize)
	if chunk < 1 {
		chunk = 1
	}
	var tasks []Task
	for lo := int64(0); lo < total; lo += chunk {
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		tasks = append(tasks, Task{Lo: lo, Hi: hi})
	}
	return tasks
}

// Run executes the search and returns ranked results. Validation errors
// (unknown stage, empty dictionary, oversized space) surface here before
// any chunk is dispatched.
func (o *Orchestrator) Run() (*Results, error) {
	axes, err := pipeline.Axes(o.Stages, len(o.Keys))
	if err != nil {
		return nil, err
	}
	total, err := pipeline.SpaceSize(axes)
	if err != nil {
		return nil, err
	}
	radix := pipeline.Radix(axes)
	tasks := Tasks(total, o.ChunkSize)

	start := time.Now()
	outcomes := make([]chunkOutcome, len(tasks))

	if o.Workers <= 1 {
		o.runSequential(tasks, radix, outcomes, start)
	} else {
		o.runParallel(tasks, radix, outcomes, start)
	}

	res := &Results{Tasks: len(tasks), Elapsed: time.Since(start)}
	var all []types.Hit
	for _, out := range outcomes {
		res.Attempts += out.res.Attempts
		if out.failed {
			res.FailedChunks++
			continue
		}
		all = append(all, out.res.Hits...)
	}
	res.HitCount = len(all)
	res.Hits = RankHits(all, o.MaxHits)

	if res.FailedChunks > 0 {
		log.Printf("[warn] %d of %d chunks failed; their indices were not searched", res.FailedChunks, len(tasks))
	}
	return res, nil
}

type chunkOutcome struct {
	res    ChunkResult
	failed bool
}

func (o *Orchestrator) newWorker(radix []int) *Worker {
	exec := pipeline.NewExecutor(o.Stages, o.Ciphertext, o.Keys, o.BifidAlphabet)
	return NewWorker(exec, radix, o.Scorer, o.Threshold)
}

func (o *Orchestrator) runSequential(tasks []Task, radix []int, outcomes []chunkOutcome, start time.Time) {
	w := o.newWorker(radix)
	var attempts int64
	hits := 0
	for i, t := range tasks {
		outcomes[i] = runChunk(w, t)
		attempts += outcomes[i].res.Attempts
		hits += len(outcomes[i].res.Hits)
		o.progress(i+1, len(tasks), attempts, hits, start)
	}
}

func (o *Orchestrator) runParallel(tasks []Task, radix []int, outcomes []chunkOutcome, start time.Time) {
	taskCh := make(chan int)

	var mu sync.Mutex
	completed := 0
	var attempts int64
	hits := 0

	var wg sync.WaitGroup
	for n := 0; n < o.Workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := o.newWorker(radix)
			for i := range taskCh {
				out := runChunk(w, tasks[i])
				outcomes[i] = out

				mu.Lock()
				completed++
				attempts += out.res.Attempts
				hits += len(out.res.Hits)
				o.progress(completed, len(tasks), attempts, hits, start)
				mu.Unlock()
			}
		}()
	}

	for i := range tasks {
		taskCh <- i
	}
	close(taskCh)
	wg.Wait()
}

// runChunk isolates worker panics: a failed chunk yields zero hits and
// the run continues.
func runChunk(w *Worker, t Task) (out chunkOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[warn] chunk [%d,%d) failed: %v", t.Lo, t.Hi, r)
			out = chunkOutcome{failed: true, res: ChunkResult{Attempts: t.Hi - t.Lo}}
		}
	}()
	out.res = w.ProcessChunk(t.Lo, t.Hi)
	return out
}

func (o *Orchestrator) progress(done, total int, attempts int64, hits int, start time.Time) {
	if o.Progress == nil || o.ProgressEvery <= 0 || done%o.ProgressEvery != 0 {
		return
	}
	dt := time.Since(start).Seconds()
	if dt <= 0 {
		dt = 1e-9
	}
	fmt.Fprintf(o.Progress, "[progress] tasks=%s/%s attempts=%s hits=%d rate=%s/s\n",
		Comma(int64(done)), Comma(int64(total)), Comma(attempts), hits,
		Comma(int64(float64(attempts)/dt)))
}

// RankHits sorts hits descending by score and truncates to maxHits. The
// sort is stable: equal scores keep their task-order position, so output
// is deterministic for any worker count. maxHits <= 0 reports nothing.
func RankHits(hits []types.Hit, maxHits int) []types.Hit {
	ranked := make([]types.Hit, len(hits))
	copy(ranked, hits)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if maxHits < 0 {
		maxHits = 0
	}
	if len(ranked) > maxHits {
		ranked = ranked[:maxHits]
	}
	return ranked
}

// Comma formats n with thousands separators for banner and progress
// lines.
func Comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
