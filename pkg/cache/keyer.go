package cache

import "github.com/matzehuels/gridspace/pkg/config"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey names a computed layout of the scene with the given hash.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
	// ArtifactKey names a rendered export of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the scene that change a layout.
type LayoutKeyOpts struct {
	Mode   string        `json:"mode"`
	Config config.Config `json:"config"`
}

// ArtifactKeyOpts are the inputs besides the layout that change an export.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
