package vcr

// Vars is the typed variable store the effect reads its settings from.
// Values are read once per frame.
type Vars interface {
	Declare(name, value string, archive bool)
	Bool(name string) bool
	Int(name string) int
	Float(name string) float64
	SetInt(name string, value int)
	SetFloat(name string, value float64)
}

// Variable names
const (
	VarEnabled            = "vcr_enabled"
	VarQuality            = "vcr_quality"
	VarMode               = "vcr_mode"
	VarRecIndicator       = "vcr_rec_indicator"
	VarTimestamp          = "vcr_timestamp"
	VarTrackingLines      = "vcr_tracking_lines"
	VarStaticBursts       = "vcr_static_bursts"
	VarDebug              = "vcr_debug"
	VarDesaturation       = "vcr_desaturation"
	VarNoiseDots          = "vcr_noise_dots"
	VarGrainIntensity     = "vcr_grain_intensity"
	VarScanlineAlpha      = "vcr_scanline_alpha"
	VarDistortionInterval = "vcr_distortion_interval"
	VarDistortionDuration = "vcr_distortion_duration"
	VarCCTVChance         = "vcr_cctv_chance"
)

type varDecl struct {
	name    string
	value   string
	archive bool
}

// Archived variables survive restarts through the config file
var declarations = []varDecl{
	{VarEnabled, "1", true},
	{VarQuality, "2", true},
	{VarMode, "0", true},
	{VarRecIndicator, "1", true},
	{VarTimestamp, "1", true},
	{VarTrackingLines, "1", true},
	{VarStaticBursts, "1", true},
	{VarDebug, "0", false},
	{VarDesaturation, "0.5", false},
	{VarNoiseDots, "1.0", false},
	{VarGrainIntensity, "1.0", false},
	{VarScanlineAlpha, "1.0", false},
	// Not consumed by the fixed timeline, kept so stored configs stay valid
	{VarDistortionInterval, "20.0", false},
	{VarDistortionDuration, "1.5", false},
	{VarCCTVChance, "0.3", false},
}

func declareVars(v Vars) {
	for _, d := range declarations {
		v.Declare(d.name, d.value, d.archive)
	}
}

// settings is one frame's read of the variables
type settings struct {
	enabled       bool
	quality       int
	mode          int
	recIndicator  bool
	timestamp     bool
	trackingLines bool
	staticBursts  bool
	debug         bool

	desaturation       float32
	noiseDots          float32
	grainIntensity     float32
	scanlineAlpha      float32
	distortionDuration float64
	cctvChance         float32
}

func readSettings(v Vars) settings {
	return settings{
		enabled:       v.Bool(VarEnabled),
		quality:       ClampQuality(v.Int(VarQuality)),
		mode:          ClampMode(v.Int(VarMode)),
		recIndicator:  v.Bool(VarRecIndicator),
		timestamp:     v.Bool(VarTimestamp),
		trackingLines: v.Bool(VarTrackingLines),
		staticBursts:  v.Bool(VarStaticBursts),
		debug:         v.Bool(VarDebug),

		desaturation:       float32(v.Float(VarDesaturation)),
		noiseDots:          float32(v.Float(VarNoiseDots)),
		grainIntensity:     float32(v.Float(VarGrainIntensity)),
		scanlineAlpha:      float32(v.Float(VarScanlineAlpha)),
		distortionDuration: v.Float(VarDistortionDuration),
		cctvChance:         float32(v.Float(VarCCTVChance)),
	}
}

func (s settings) tuning() Tuning {
	return Tuning{
		PeakDesaturation:   s.desaturation,
		DistortionDuration: s.distortionDuration,
		CCTVChance:         s.cctvChance,
	}
}
