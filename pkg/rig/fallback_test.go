package rig

import (
	"math"
	"testing"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
	"github.com/ayase-labs/go-puppet/pkg/puppet"
)

// makeSet builds a full-size landmark set with the given points placed and
// everything else at the face center.
func makeSet(points map[int]landmark.Point) *landmark.Set {
	set := &landmark.Set{Points: make([]landmark.Point, landmark.MeshSize), Score: 1}
	for i := range set.Points {
		set.Points[i] = landmark.Point{X: 0.5, Y: 0.5}
	}
	for i, p := range points {
		set.Points[i] = p
	}
	return set
}

func signalByParam(t *testing.T, sigs []Signal, param string) Signal {
	t.Helper()
	for _, s := range sigs {
		if s.Param == param {
			return s
		}
	}
	t.Fatalf("no signal for %s", param)
	return Signal{}
}

func TestFallbackRig_MouthOpenness(t *testing.T) {
	r := NewFallbackRig(DefaultFallbackConfig())
	set := makeSet(map[int]landmark.Point{
		landmark.UpperLip: {X: 0.5, Y: 0.40},
		landmark.LowerLip: {X: 0.5, Y: 0.42},
	})

	sigs, err := r.Extract(set, 1280, 720)
	if err != nil {
		t.Fatal(err)
	}

	mouth := signalByParam(t, sigs, puppet.ParamMouthOpenY)
	if math.Abs(mouth.Value-0.8) > 1e-9 {
		t.Errorf("mouth raw = %v, want 0.8", mouth.Value)
	}
	// 0.8 is already inside [0,1]; the clamp must not touch it.
	if got := mouth.Clamp(mouth.Value); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("mouth clamped = %v, want 0.8", got)
	}
}

func TestFallbackRig_HeadRotationProxies(t *testing.T) {
	r := NewFallbackRig(DefaultFallbackConfig())

	// Eye corners centered at x=0.5; nose shifted right and down; ears
	// tilted.
	set := makeSet(map[int]landmark.Point{
		landmark.LeftEyeOuter:  {X: 0.45, Y: 0.50},
		landmark.RightEyeOuter: {X: 0.55, Y: 0.50},
		landmark.NoseTip:       {X: 0.52, Y: 0.53},
		landmark.LeftEar:       {X: 0.40, Y: 0.51},
		landmark.RightEar:      {X: 0.60, Y: 0.49},
	})

	sigs, err := r.Extract(set, 1280, 720)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		param string
		value float64
		min   float64
		max   float64
	}{
		{puppet.ParamAngleX, 0.02 * 200, -70, 70},
		{puppet.ParamAngleY, 0.03 * 200, -70, 70},
		{puppet.ParamAngleZ, 0.02 * 200, -50, 50},
		{puppet.ParamEyeBallX, 0.02 * 150, -1, 1},
		{puppet.ParamEyeBallY, 0.03 * 150, -1, 1},
		{puppet.ParamBodyAngleX, 0, -30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			sig := signalByParam(t, sigs, tt.param)
			if math.Abs(sig.Value-tt.value) > 1e-9 {
				t.Errorf("value = %v, want %v", sig.Value, tt.value)
			}
			if sig.Min != tt.min || sig.Max != tt.max {
				t.Errorf("domain = [%v,%v], want [%v,%v]", sig.Min, sig.Max, tt.min, tt.max)
			}
		})
	}
}

func TestFallbackRig_BodyFollowsFaceCenter(t *testing.T) {
	r := NewFallbackRig(DefaultFallbackConfig())

	// Whole face shifted left of screen center by 0.1.
	set := makeSet(map[int]landmark.Point{
		landmark.LeftEyeOuter:  {X: 0.35, Y: 0.50},
		landmark.RightEyeOuter: {X: 0.45, Y: 0.50},
	})

	sigs, err := r.Extract(set, 1280, 720)
	if err != nil {
		t.Fatal(err)
	}

	body := signalByParam(t, sigs, puppet.ParamBodyAngleX)
	if math.Abs(body.Value-(-10)) > 1e-9 {
		t.Errorf("body X = %v, want -10", body.Value)
	}
}

func TestFallbackRig_NoMouthFormOrBrows(t *testing.T) {
	r := NewFallbackRig(DefaultFallbackConfig())
	sigs, err := r.Extract(makeSet(nil), 1280, 720)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range sigs {
		switch s.Param {
		case puppet.ParamMouthForm, puppet.ParamBrowLY, puppet.ParamBrowRY:
			t.Errorf("fallback rig produced %s", s.Param)
		}
	}
}

func TestFallbackRig_NoSecondaryChannels(t *testing.T) {
	r := NewFallbackRig(DefaultFallbackConfig())
	if got := r.Secondary(map[string]float64{puppet.ParamAngleX: 10}); got != nil {
		t.Errorf("Secondary = %v, want nil", got)
	}
}

func TestFallbackRig_EyeOpenness(t *testing.T) {
	r := NewFallbackRig(DefaultFallbackConfig())
	set := makeSet(map[int]landmark.Point{
		landmark.LeftEyeTop:     {X: 0.46, Y: 0.48},
		landmark.LeftEyeBottom:  {X: 0.46, Y: 0.50},
		landmark.RightEyeTop:    {X: 0.54, Y: 0.485},
		landmark.RightEyeBottom: {X: 0.54, Y: 0.50},
	})

	sigs, err := r.Extract(set, 1280, 720)
	if err != nil {
		t.Fatal(err)
	}

	eyeL := signalByParam(t, sigs, puppet.ParamEyeLOpen)
	if math.Abs(eyeL.Value-0.6) > 1e-9 {
		t.Errorf("eye L = %v, want 0.6", eyeL.Value)
	}
	eyeR := signalByParam(t, sigs, puppet.ParamEyeROpen)
	if math.Abs(eyeR.Value-0.45) > 1e-9 {
		t.Errorf("eye R = %v, want 0.45", eyeR.Value)
	}
}
