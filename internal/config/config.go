// Package config provides configuration helpers for go-puppet commands.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default service configuration.
const (
	DefaultPort         = "8420"
	DefaultCameraDevice = 0
	DefaultModelDir     = "models/puppets"
	DefaultFaceModel    = "models/face_detection_yunet.onnx"
	DefaultMeshModel    = "models/face_landmarker.onnx"
)

// LoadDotenv loads a .env file if one exists next to the binary.
// Missing files are not an error; explicit env vars always win.
func LoadDotenv() {
	_ = godotenv.Load()
}

// Port returns the HTTP port from PUPPET_PORT or the default.
func Port() string {
	if p := os.Getenv("PUPPET_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// CameraDevice returns the capture device index from CAMERA_DEVICE.
// Falls back to device 0 if unset or malformed.
func CameraDevice() int {
	if d := os.Getenv("CAMERA_DEVICE"); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			return n
		}
	}
	return DefaultCameraDevice
}

// ModelDir returns the puppet model directory from MODEL_DIR or the default.
func ModelDir() string {
	if dir := os.Getenv("MODEL_DIR"); dir != "" {
		return dir
	}
	return DefaultModelDir
}

// FaceModel returns the face detection model path from FACE_MODEL.
func FaceModel() string {
	if p := os.Getenv("FACE_MODEL"); p != "" {
		return p
	}
	return DefaultFaceModel
}

// MeshModel returns the landmark mesh model path from MESH_MODEL.
func MeshModel() string {
	if p := os.Getenv("MESH_MODEL"); p != "" {
		return p
	}
	return DefaultMeshModel
}

// LogLevel returns the log level from LOG_LEVEL or "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
