package cache

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	HTTPKey(namespace, key string) string
	DatasetKey(source string) string
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	PercentStacked   bool     `json:"percent_stacked"`
	SupportsOverflow bool     `json:"supports_overflow"`
	SortSeries       string   `json:"sort_series"`
	ColorGradient    bool     `json:"color_gradient"`
	Palette          []string `json:"palette,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Style        string  `json:"style"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	BorderWidth  float64 `json:"border_width"`
	ThinnerRatio float64 `json:"thinner_ratio"`
	Legend       bool    `json:"legend"`
	Labels       bool    `json:"labels"`
	Title        string  `json:"title,omitempty"`
	Language     string  `json:"language,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// DatasetKey hashes a dataset source (path or URL).
func (DefaultKeyer) DatasetKey(source string) string {
	return hashKey("dataset", source)
}

// LayoutKey hashes a dataset hash together with the layout options.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey hashes a layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
