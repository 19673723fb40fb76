package vision2022

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/team6962/vision2022/calib"
	"github.com/team6962/vision2022/hub"
	"gocv.io/x/gocv"
)

// floatsEqual compares two floats within an epsilon
func floatsEqual(a, b, epsilon float64) bool {
	diff := a - b
	return diff <= epsilon && diff >= -epsilon
}

// testParams returns a known-geometry pipeline with a distortion free
// camera and a level camera mount, for synthetic scenes.
func testParams(t *testing.T) PipelineParams {

	in, err := calib.NewIntrinsics(
		[]float64{
			700, 0, 480,
			0, 700, 360,
			0, 0, 1,
		},
		[]float64{0, 0, 0, 0, 0},
	)

	if err != nil {
		t.Fatalf("building intrinsics: %v", err)
	}

	params := DefaultPipelineParams(720)
	params.Intrinsics = in
	params.Known = &hub.KnownGeometry{HubHeight: 104, CamHeight: 29.7, CamPitch: 0}

	return params
}

func TestNewPipelineValidation(t *testing.T) {

	good := func(t *testing.T) PipelineParams { return testParams(t) }

	cases := []struct {
		name   string
		mutate func(*PipelineParams)
	}{
		{"nil intrinsics", func(p *PipelineParams) { p.Intrinsics = nil }},
		{"unknown target", func(p *PipelineParams) { p.Target = Target(99) }},
		{"unknown mode", func(p *PipelineParams) { p.Mode = Mode(99) }},
		{"known mode without constants", func(p *PipelineParams) { p.Known = nil }},
	}

	for _, tc := range cases {
		params := good(t)
		tc.mutate(&params)

		if _, err := NewPipeline(params); err == nil {
			t.Errorf("%s: expected a configuration error", tc.name)
		}
	}

	// PnP mode does not need the mounting constants
	params := good(t)
	params.Mode = ModePnP
	params.Known = nil

	if _, err := NewPipeline(params); err != nil {
		t.Errorf("unexpected error for pnp without constants: %v", err)
	}
}

func TestProcessMaskEmpty(t *testing.T) {

	pipeline, err := NewPipeline(testParams(t))
	if err != nil {
		t.Fatalf("building pipeline: %v", err)
	}

	mask := gocv.NewMatWithSize(720, 960, gocv.MatTypeCV8UC1)
	defer mask.Close()

	res := pipeline.ProcessMask(mask)

	if res.Tracked {
		t.Error("expected an empty mask to be untracked")
	}
	if len(res.Quads) != 0 {
		t.Errorf("expected no quads, got %d", len(res.Quads))
	}
	if res.Yaw != 0 || res.Pitch != 0 || res.Distance != 0 {
		t.Errorf("expected zero metrics, got %+v", res)
	}
}

func TestProcessMaskKnownGeometry(t *testing.T) {

	params := testParams(t)

	pipeline, err := NewPipeline(params)
	if err != nil {
		t.Fatalf("building pipeline: %v", err)
	}

	mask := gocv.NewMatWithSize(720, 960, gocv.MatTypeCV8UC1)
	defer mask.Close()

	// two strips symmetric about the principal point, top edge 160px
	// above it
	white := color.RGBA{255, 255, 255, 0}
	gocv.Rectangle(&mask, image.Rect(400, 200, 440, 212), white, -1)
	gocv.Rectangle(&mask, image.Rect(520, 200, 560, 212), white, -1)

	res := pipeline.ProcessMask(mask)

	if !res.Tracked {
		t.Fatal("expected the strips to be tracked")
	}
	if len(res.Quads) != 2 {
		t.Fatalf("expected 2 quads, got %d", len(res.Quads))
	}

	// top edge at normalized y = 160/700 above the optical axis
	theta := math.Atan(160.0 / 700.0)
	wantDist := (104 + 1 - 29.7) / math.Tan(theta) + params.Hub.Radius

	if !floatsEqual(res.Distance, wantDist, 10) {
		t.Errorf("expected distance near %f, got %f", wantDist, res.Distance)
	}
	if !floatsEqual(res.Yaw, 0, 0.5) {
		t.Errorf("expected zero yaw for a centered target, got %f", res.Yaw)
	}
	if res.Pitch != 0 {
		t.Errorf("expected the mounted camera pitch, got %f", res.Pitch)
	}
}

func TestProcessSegmentsGreen(t *testing.T) {

	pipeline, err := NewPipeline(testParams(t))
	if err != nil {
		t.Fatalf("building pipeline: %v", err)
	}

	frame := gocv.NewMatWithSize(720, 960, gocv.MatTypeCV8UC3)
	defer frame.Close()

	green := color.RGBA{R: 20, G: 220, B: 30, A: 0}
	gocv.Rectangle(&frame, image.Rect(400, 200, 440, 212), green, -1)
	gocv.Rectangle(&frame, image.Rect(520, 200, 560, 212), green, -1)

	res := pipeline.Process(frame)

	if !res.Tracked {
		t.Fatal("expected the green strips to be tracked")
	}
	if len(res.Quads) != 2 {
		t.Errorf("expected 2 quads, got %d", len(res.Quads))
	}
}

func TestAnnotateUntracked(t *testing.T) {

	pipeline, err := NewPipeline(testParams(t))
	if err != nil {
		t.Fatalf("building pipeline: %v", err)
	}

	frame := gocv.NewMatWithSize(720, 960, gocv.MatTypeCV8UC3)
	defer frame.Close()

	// drawing an untracked result must not touch the pose overlay path
	pipeline.Annotate(&frame, Result{})

	if frame.Empty() {
		t.Error("expected the frame to stay valid")
	}
}
