package rule

import (
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/praetorian-inc/structsrc/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading pair sets from YAML or TOML definitions.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in pair sets
}

// NewLoader creates a loader with built-in pair sets from the embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinPairsFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
// Pair set files are read from its "pairs" directory.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadPairSet loads a single pair set from YAML bytes.
// Returns error if YAML is invalid, the set is invalid, or more than one set is present.
func (l *Loader) LoadPairSet(data []byte) (*types.PairSet, error) {
	var file yamlPairSetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	return single(file)
}

// LoadPairSetTOML loads a single pair set from TOML bytes.
func (l *Loader) LoadPairSetTOML(data []byte) (*types.PairSet, error) {
	var file yamlPairSetsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}
	return single(file)
}

// LoadBuiltinPairSets loads every pair set under "pairs" in the loader's filesystem.
func (l *Loader) LoadBuiltinPairSets() ([]*types.PairSet, error) {
	var sets []*types.PairSet

	err := fs.WalkDir(l.fs, "pairs", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var decode func([]byte, any) error
		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			decode = yaml.Unmarshal
		case ".toml":
			decode = toml.Unmarshal
		default:
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}

		var file yamlPairSetsFile
		if err := decode(data, &file); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}

		for _, ys := range file.PairSets {
			ps := convertPairSet(ys)
			if err := ValidatePairSet(ps); err != nil {
				return errors.Wrapf(err, "invalid pair set in %s", path)
			}
			sets = append(sets, ps)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sets, nil
}

// Builtin returns the built-in pair set with the given ID.
func (l *Loader) Builtin(id string) (*types.PairSet, error) {
	sets, err := l.LoadBuiltinPairSets()
	if err != nil {
		return nil, err
	}
	for _, ps := range sets {
		if ps.ID == id {
			return ps, nil
		}
	}
	return nil, errors.Newf("no built-in pair set %q", id)
}

func single(file yamlPairSetsFile) (*types.PairSet, error) {
	if len(file.PairSets) == 0 {
		return nil, errors.New("no pair sets found")
	}
	if len(file.PairSets) > 1 {
		return nil, errors.Newf("expected single pair set, found %d", len(file.PairSets))
	}
	ps := convertPairSet(file.PairSets[0])
	if err := ValidatePairSet(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// convertPairSet converts yamlPairSet to types.PairSet.
func convertPairSet(ys yamlPairSet) *types.PairSet {
	ps := &types.PairSet{
		ID:          ys.ID,
		Name:        ys.Name,
		Description: ys.Description,
		Escape:      ys.Escape,
		Pairs:       make([]types.Pair, 0, len(ys.Pairs)),
	}
	for _, p := range ys.Pairs {
		ps.Pairs = append(ps.Pairs, types.Pair{Open: p.Open, Close: p.Close})
	}
	return ps
}
