package cache

// Keyer derives cache keys from render inputs.
type Keyer interface {
	// TreeKey identifies a laid-out tree.
	TreeKey(opts TreeKeyOpts) string
	// ArtifactKey identifies one rendered output of a laid-out tree.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// TreeKeyOpts are the inputs that shape a tree and its layout.
type TreeKeyOpts struct {
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Policy      string  `json:"policy"`
	MaxNodes    int     `json:"max_nodes"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	HMargin     float64 `json:"h_margin"`
	VMargin     float64 `json:"v_margin"`
	LeafSpacing float64 `json:"leaf_spacing"`
}

// ArtifactKeyOpts are the inputs that change how a laid-out tree is drawn.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Nodes        string  `json:"nodes"`
	Edges        string  `json:"edges"`
	SymmetryLine bool    `json:"symmetry_line"`
	Zoom         float64 `json:"zoom"`
	PanX         float64 `json:"pan_x"`
	PanY         float64 `json:"pan_y"`
	NodeRadius   float64 `json:"node_radius,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
	Tooltips     bool    `json:"tooltips,omitempty"`
	Detailed     bool    `json:"detailed,omitempty"`
	Pinned       bool    `json:"pinned,omitempty"`
	TextCols     int     `json:"text_cols,omitempty"`
	TextRows     int     `json:"text_rows,omitempty"`
}

// DefaultKeyer hashes the options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) TreeKey(opts TreeKeyOpts) string {
	return hashKey("tree", opts)
}

func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// ScopedKeyer prefixes every key from an inner Keyer. The CLI and server
// scope keys by build version so an upgrade never serves old artifacts.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TreeKey(opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
