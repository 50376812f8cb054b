package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/utils"
)

// Sampler turns videos into numbered image files, keeping every Nth frame
type Sampler struct {
	opener Opener
	writer ImageWriter
	logger *zap.Logger

	// mkdir is swappable so tests can fail directory creation
	mkdir func(string) error
}

// NewSampler wires a decoder source and an image sink together
func NewSampler(opener Opener, writer ImageWriter, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{
		opener: opener,
		writer: writer,
		logger: logger,
		mkdir:  utils.EnsureDir,
	}
}

// ImageName is the file name of the kept-th retained frame of video id
func ImageName(id string, kept int) string {
	return fmt.Sprintf("%s_%06d.jpg", id, kept)
}

// Sample decodes src frame by frame into outputRoot/src.ID. The returned
// error is non-nil when the video was abandoned; the result still counts
// what was written before that point.
func (s *Sampler) Sample(ctx context.Context, src VideoSource, outputRoot string, rate SampleRate, worker int, obs Observer) (VideoResult, error) {
	res := VideoResult{Source: src, OutputDir: filepath.Join(outputRoot, src.ID)}
	if err := rate.Validate(); err != nil {
		return res, err
	}
	if src.ID == "" {
		return res, &types.InvalidArgumentError{Arg: "video identifier", Reason: fmt.Sprintf("empty for %s", src.Path)}
	}
	if obs == nil {
		obs = NopObserver{}
	}

	dec, err := s.opener.Open(ctx, src.Path)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := dec.Close(); cerr != nil {
			s.logger.Warn("closing decoder", zap.String("path", src.Path), zap.Error(cerr))
		}
	}()

	if err := s.mkdir(res.OutputDir); err != nil {
		return res, err
	}

	expected := 0
	if fc, ok := dec.(FrameCounter); ok {
		expected = rate.ExpectedImages(fc.FrameCount())
	}
	obs.OnVideoStart(worker, src, expected)

	rawIndex, keptIndex := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			res.Frames, res.Images = rawIndex, keptIndex
			return res, err
		}

		frame, err := dec.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Frames, res.Images = rawIndex, keptIndex
			if !types.IsDecode(err) && ctx.Err() == nil {
				err = &types.DecodeError{Path: src.Path, Err: err}
			}
			return res, err
		}

		if rate.Keeps(rawIndex) {
			path := filepath.Join(res.OutputDir, ImageName(src.ID, keptIndex))
			if err := s.writer.WriteImage(path, frame); err != nil {
				res.Frames, res.Images = rawIndex+1, keptIndex
				if !types.IsWrite(err) {
					err = &types.WriteError{Path: path, Err: err}
				}
				return res, err
			}
			keptIndex++
			obs.OnImageWritten(worker, src, keptIndex)
		}
		rawIndex++
	}

	res.Frames, res.Images = rawIndex, keptIndex
	s.logger.Info("frames extracted",
		zap.String("video", src.ID),
		zap.Int("frames", res.Frames),
		zap.Int("images", res.Images),
	)
	return res, nil
}

// fatal reports errors that stop the whole batch instead of just one video
func fatal(ctx context.Context, err error) bool {
	return types.IsWrite(err) || ctx.Err() != nil
}

// RunBatch samples every source. With workers <= 1 videos are processed one
// after another in order; otherwise up to workers videos are decoded at once,
// each by its own decoder into its own directory. A video that fails to open
// or decode is recorded and skipped; write failures and cancellation abort
// the batch.
func (s *Sampler) RunBatch(ctx context.Context, sources []VideoSource, outputRoot string, rate SampleRate, workers int, obs Observer) (*BatchResult, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = NopObserver{}
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(sources) {
		workers = max(len(sources), 1)
	}

	results := make([]VideoResult, len(sources))
	dispatched := make([]bool, len(sources))
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)

	// Start workers
	for w := 0; w < workers; w++ {
		workerID := w
		g.Go(func() error {
			for i := range jobs {
				res, err := s.Sample(gctx, sources[i], outputRoot, rate, workerID, obs)
				res.Err = err
				results[i] = res
				dispatched[i] = true
				obs.OnVideoDone(workerID, res)

				if err != nil {
					if fatal(gctx, err) {
						return err
					}
					s.logger.Warn("video abandoned",
						zap.String("path", sources[i].Path),
						zap.Int("images", res.Images),
						zap.Error(err),
					)
				}
			}
			return nil
		})
	}

	// Send jobs
	g.Go(func() error {
		defer close(jobs)
		for i := range sources {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	err := g.Wait()

	batch := &BatchResult{}
	for i, res := range results {
		if !dispatched[i] {
			// never dispatched because the batch stopped early
			continue
		}
		batch.Videos = append(batch.Videos, results[i])
		batch.Images += res.Images
		if res.Failed() {
			batch.Failed++
		}
	}

	if err != nil {
		return batch, err
	}
	if ctx.Err() != nil {
		return batch, ctx.Err()
	}
	return batch, nil
}
