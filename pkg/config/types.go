package config

// Config represents the optional annealplot configuration file
type Config struct {
	LogLevel    string      `yaml:"log_level"`
	Chart       Chart       `yaml:"chart"`
	Convergence Convergence `yaml:"convergence"`
}

// Chart controls the rendered figure. Sizes are in inches and points so the
// output scales with DPI the same way a print figure does.
type Chart struct {
	Title              string  `yaml:"title"`
	XLabel             string  `yaml:"x_label"`
	YLabel             string  `yaml:"y_label"`
	WidthIn            float64 `yaml:"width_in"`
	HeightIn           float64 `yaml:"height_in"`
	DPI                float64 `yaml:"dpi"`
	LineColor          string  `yaml:"line_color"` // hex, e.g. "#0000ff"
	LineWidthPt        float64 `yaml:"line_width_pt"`
	LineAlpha          float64 `yaml:"line_alpha"`
	Grid               bool    `yaml:"grid"`
	StatsBox           bool    `yaml:"stats_box"`
	TitleFontSize      float64 `yaml:"title_font_size"`
	LabelFontSize      float64 `yaml:"label_font_size"`
	AnnotationFontSize float64 `yaml:"annotation_font_size"`
}

// Convergence configures stall detection over the distance trajectory
type Convergence struct {
	Strategy             string  `yaml:"strategy"` // combined, no_improvement, plateau, improvement_threshold, variance, none
	NoImprovementSteps   int     `yaml:"no_improvement_steps"`
	PlateauSteps         int     `yaml:"plateau_steps"`
	MinSteps             int     `yaml:"min_steps"`
	ImprovementThreshold float64 `yaml:"improvement_threshold"` // relative, 0.0001 = 0.01%
	ScoreTolerance       float64 `yaml:"score_tolerance"`       // absolute, in distance units
}

// WidthPx returns the figure width in pixels
func (c Chart) WidthPx() int {
	return int(c.WidthIn*c.DPI + 0.5)
}

// HeightPx returns the figure height in pixels
func (c Chart) HeightPx() int {
	return int(c.HeightIn*c.DPI + 0.5)
}

// DefaultConfig returns the configuration that reproduces the stock figure:
// 10x6 inches at 300 DPI, blue 1.5pt line, dashed grid and a statistics box.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Chart: Chart{
			Title:              "Distance vs Temperature During Simulated Annealing",
			XLabel:             "Temperature",
			YLabel:             "Distance (km)",
			WidthIn:            10,
			HeightIn:           6,
			DPI:                300,
			LineColor:          "#0000ff",
			LineWidthPt:        1.5,
			LineAlpha:          0.8,
			Grid:               true,
			StatsBox:           true,
			TitleFontSize:      14,
			LabelFontSize:      12,
			AnnotationFontSize: 10,
		},
		Convergence: Convergence{
			Strategy:             "combined",
			NoImprovementSteps:   50,
			PlateauSteps:         20,
			MinSteps:             10,
			ImprovementThreshold: 0.0001,
			ScoreTolerance:       0.001,
		},
	}
}
