//go:build !headless

package main

import (
	"github.com/cjeanneret/WebcamShot/internal/hw/camera"
	"github.com/cjeanneret/WebcamShot/internal/hw/display"
	"github.com/cjeanneret/WebcamShot/internal/hw/opencv"
)

func openCVCamera(deviceID int) (camera.Camera, error) {
	return opencv.OpenCamera(deviceID)
}

func openCVWindow(title string) (display.Display, error) {
	return opencv.NewWindow(title), nil
}

func openCVWriter() camera.FrameWriter {
	return opencv.Writer{}
}
