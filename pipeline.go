package vision2022

import (
	"fmt"

	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/chess"
	"github.com/team6962/vision2022/hub"
	"github.com/team6962/vision2022/pose"
	"github.com/team6962/vision2022/quad"
	"github.com/team6962/vision2022/render"
	"github.com/team6962/vision2022/segment"
	"gocv.io/x/gocv"
)

// Target selects what the pipeline tracks.
type Target int

const (
	// TargetHub tracks the competition hub
	TargetHub Target = iota
	// TargetChess tracks a calibration chessboard, used during setup to
	// measure camera pitch and distance offsets
	TargetChess
)

// Mode selects the hub localizer.
type Mode int

const (
	// ModePnP runs iterative pose estimation over strip correspondences
	ModePnP Mode = iota
	// ModeKnownGeometry solves distance and yaw in closed form from the
	// known camera height, camera pitch and hub height
	ModeKnownGeometry
)

// PipelineParams is the static pipeline configuration, loaded once at
// startup and never mutated.
type PipelineParams struct {
	Target     Target
	Mode       Mode
	Intrinsics *calib.Intrinsics
	Hub        hub.ModelParams
	// Mounting constants, required by ModeKnownGeometry
	Known     *hub.KnownGeometry
	Extractor quad.ExtractorParams
	Segment   segment.Params
	Estimator pose.EstimatorParams
	Chess     chess.Params
}

// DefaultPipelineParams returns the reference deployment configuration
// for the given camera image height.
func DefaultPipelineParams(imageHeight int) PipelineParams {

	known := hub.DefaultKnownGeometry()

	return PipelineParams{
		Target:     TargetHub,
		Mode:       ModeKnownGeometry,
		Intrinsics: calib.NewLimelightIntrinsics(imageHeight),
		Hub:        hub.DefaultModelParams(),
		Known:      &known,
		Extractor:  quad.DefaultExtractorParams(),
		Segment:    segment.DefaultParams(),
		Estimator:  pose.DefaultEstimatorParams(),
		Chess:      chess.DefaultParams(),
	}
}

// Result is the per-frame pipeline output.  All metric fields are zero
// and Tracked is false when the frame produced no usable observation.
type Result struct {
	// Validated quads found this frame, ordered left to right
	Quads []quad.Quad
	// Signed horizontal bearing error to the target, degrees
	Yaw float64
	// Camera elevation, degrees
	Pitch float64
	// Horizontal distance from camera to target center, world units
	Distance float64
	// Whether the target was found and the metrics are trustworthy
	Tracked bool
}

// Pipeline processes frames one at a time.  The only state carried
// between frames is the pose estimator's tracked pose, so frames must be
// delivered in temporal order and calls must not overlap.
type Pipeline struct {
	params    PipelineParams
	segmenter *segment.Segmenter
	extractor *quad.Extractor
	model     *hub.Model
	localizer *hub.Localizer
	chess     *chess.Tracker
}

// NewPipeline validates the configuration and builds the pipeline.
// Configuration mistakes are hard failures here, unlike per-frame
// detection failures which degrade to an untracked Result.
func NewPipeline(params PipelineParams) (*Pipeline, error) {

	if params.Intrinsics == nil {
		return nil, fmt.Errorf("pipeline: camera intrinsics are required")
	}

	switch params.Target {
	case TargetHub, TargetChess:
	default:
		return nil, fmt.Errorf("pipeline: unknown target %d", params.Target)
	}

	switch params.Mode {
	case ModePnP:
	case ModeKnownGeometry:
		if params.Known == nil {
			return nil, fmt.Errorf("pipeline: known-geometry mode requires mounting constants")
		}
	default:
		return nil, fmt.Errorf("pipeline: unknown localizer mode %d", params.Mode)
	}

	model := hub.NewModel(params.Hub)

	return &Pipeline{
		params:    params,
		segmenter: segment.NewSegmenter(params.Segment),
		extractor: quad.NewExtractor(params.Extractor),
		model:     model,
		localizer: hub.NewLocalizer(model, params.Intrinsics, params.Estimator, params.Known),
		chess:     chess.NewTracker(params.Intrinsics, params.Chess, params.Estimator),
	}, nil
}

// Process runs one BGR frame through segmentation, extraction and
// localization.
func (p *Pipeline) Process(frame gocv.Mat) Result {

	if p.params.Target == TargetChess {
		return p.metricsResult(nil, p.chess.Localize(frame))
	}

	mask := p.segmenter.Mask(frame)
	defer mask.Close()

	return p.ProcessMask(mask)
}

// ProcessMask runs one externally produced binary mask through extraction
// and localization.  Use this when the color segmentation stage runs
// outside the pipeline.
func (p *Pipeline) ProcessMask(mask gocv.Mat) Result {

	quads := p.extractor.FindQuads(mask)

	var m pose.Metrics

	switch p.params.Mode {
	case ModeKnownGeometry:
		m = p.localizer.LocalizeKnownGeometry(quads)
	default:
		m = p.localizer.Localize(quads)
	}

	return p.metricsResult(quads, m)
}

// Pose returns the tracked pose of the active target and whether it is
// valid.  Only the PnP paths set it.
func (p *Pipeline) Pose() (pose.Pose, bool) {

	if p.params.Target == TargetChess {
		return p.chess.Pose()
	}

	return p.localizer.Pose()
}

// Annotate draws the detection overlay and telemetry HUD onto img.
func (p *Pipeline) Annotate(img *gocv.Mat, res Result) {

	render.Quads(img, res.Quads, render.Red, render.Orange)

	if est, ok := p.Pose(); ok && p.params.Target == TargetHub {
		render.Hub(img, p.params.Intrinsics, est, p.model)
	} else if ok {
		render.Axes(img, p.params.Intrinsics, est, p.params.Chess.SquareWidth*2)
	}

	m := pose.Metrics{Yaw: res.Yaw, Pitch: res.Pitch, Distance: res.Distance, Valid: res.Tracked}
	render.Telemetry(img, m, render.DefaultFont())
}

func (p *Pipeline) metricsResult(quads []quad.Quad, m pose.Metrics) Result {
	return Result{
		Quads:    quads,
		Yaw:      m.Yaw,
		Pitch:    m.Pitch,
		Distance: m.Distance,
		Tracked:  m.Valid,
	}
}
