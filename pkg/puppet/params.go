// Package puppet manages the live avatar's named-parameter pose: the
// parameter table loaded from a model descriptor, the applier that writes
// values into it, and the catalog of available models.
package puppet

// Standard Cubism parameter ids driven by the rig. A loaded model may
// expose any subset of these; writes to parameters a model does not
// declare are silent no-ops.
const (
	ParamAngleX     = "ParamAngleX"
	ParamAngleY     = "ParamAngleY"
	ParamAngleZ     = "ParamAngleZ"
	ParamBodyAngleX = "ParamBodyAngleX"
	ParamBodyAngleY = "ParamBodyAngleY"
	ParamBodyAngleZ = "ParamBodyAngleZ"
	ParamEyeLOpen   = "ParamEyeLOpen"
	ParamEyeROpen   = "ParamEyeROpen"
	ParamEyeBallX   = "ParamEyeBallX"
	ParamEyeBallY   = "ParamEyeBallY"
	ParamMouthOpenY = "ParamMouthOpenY"
	ParamMouthForm  = "ParamMouthForm"
	ParamBrowLY     = "ParamBrowLY"
	ParamBrowRY     = "ParamBrowRY"
)
