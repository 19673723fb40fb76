/*
hubtrack runs the hub tracking pipeline on a camera stream or a single
image and prints the aiming telemetry.
*/
package main

import (
	"flag"
	"log"

	"github.com/team6962/vision2022"
	"github.com/team6962/vision2022/render"
	"gocv.io/x/gocv"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", "", "image file to process instead of a camera stream")
	device := flag.Int("d", 0, "camera device id")
	target := flag.String("target", "hub", "tracking target: hub or chess")
	mode := flag.String("mode", "known", "hub localizer: pnp or known")
	height := flag.Int("height", 720, "camera image height, used to scale the calibration")
	outFile := flag.String("o", "", "write the annotated frame to this file")
	ttfFont := flag.String("font", "", "optional TTF font for the stream label")

	flag.Parse()

	params := vision2022.DefaultPipelineParams(*height)

	switch *target {
	case "hub":
		params.Target = vision2022.TargetHub
	case "chess":
		params.Target = vision2022.TargetChess
	default:
		log.Fatal("Unknown target: ", *target)
	}

	switch *mode {
	case "pnp":
		params.Mode = vision2022.ModePnP
	case "known":
		params.Mode = vision2022.ModeKnownGeometry
	default:
		log.Fatal("Unknown localizer mode: ", *mode)
	}

	pipeline, err := vision2022.NewPipeline(params)

	if err != nil {
		log.Fatal("Error building pipeline: ", err)
	}

	var labeler *render.Labeler

	if *ttfFont != "" {
		labeler, err = render.NewLabeler(*ttfFont, 20)

		if err != nil {
			log.Fatal("Error loading font: ", err)
		}
	}

	if *imgFile != "" {
		processImage(pipeline, labeler, *imgFile, *outFile)
		return
	}

	processStream(pipeline, labeler, *device, *outFile)
}

// processImage runs the pipeline once over an image file.
func processImage(pipeline *vision2022.Pipeline, labeler *render.Labeler,
	imgFile, outFile string) {

	img := gocv.IMRead(imgFile, gocv.IMReadColor)

	if img.Empty() {
		log.Fatal("Error reading image from: ", imgFile)
	}

	defer img.Close()

	res := pipeline.Process(img)
	logResult(res, 0)

	pipeline.Annotate(&img, res)
	putLabel(labeler, &img)

	if outFile != "" {
		if ok := gocv.IMWrite(outFile, img); !ok {
			log.Fatal("Failed to save the annotated image to: ", outFile)
		}
	}
}

// processStream runs the pipeline over frames from a camera device until
// the stream ends.
func processStream(pipeline *vision2022.Pipeline, labeler *render.Labeler,
	device int, outFile string) {

	webcam, err := gocv.OpenVideoCapture(device)

	if err != nil {
		log.Fatal("Error opening video capture device: ", err)
	}

	defer webcam.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	frameIdx := 0

	for {
		if ok := webcam.Read(&frame); !ok {
			log.Println("Stream closed, exiting")
			return
		}

		if frame.Empty() {
			continue
		}

		frameIdx++

		res := pipeline.Process(frame)

		if res.Tracked || frameIdx%300 == 0 {
			logResult(res, frameIdx)
		}

		pipeline.Annotate(&frame, res)
		putLabel(labeler, &frame)

		if outFile != "" {
			gocv.IMWrite(outFile, frame)
		}
	}
}

func logResult(res vision2022.Result, frameIdx int) {
	log.Printf("frame %d: quads=%d tracked=%t yaw=%.1fdeg pitch=%.1fdeg dist=%.1fin",
		frameIdx, len(res.Quads), res.Tracked, res.Yaw, res.Pitch, res.Distance)
}

func putLabel(labeler *render.Labeler, img *gocv.Mat) {

	if labeler == nil {
		return
	}

	if err := labeler.PutLabel(img, "team 6962 hub tracking", 10, img.Rows()-12, render.White); err != nil {
		log.Println("Failed to draw label: ", err)
	}
}
