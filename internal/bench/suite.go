package bench

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/textsec/blockmatch/internal/blocklist"
)

// Suite describes one benchmark run: which blocklist variants, which test
// texts, which engines and enhancements. Loaded from a YAML file.
type Suite struct {
	BlocklistDir string   `yaml:"blocklist_dir"`
	CaseDir      string   `yaml:"case_dir"`
	Blocklists   []string `yaml:"blocklists"`
	Cases        []string `yaml:"cases"`
	Algorithms   []string `yaml:"algorithms"`
	Enhancements []string `yaml:"enhancements"`
	BlockSize    int      `yaml:"block_size"`
}

// LoadSuite reads and validates a suite definition.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}

	if len(suite.Enhancements) == 0 {
		suite.Enhancements = Enhancements
	}
	if len(suite.Blocklists) == 0 || len(suite.Cases) == 0 || len(suite.Algorithms) == 0 {
		return nil, fmt.Errorf("suite %s must name blocklists, cases and algorithms", path)
	}
	return &suite, nil
}

// LoadBlocklists reads every blocklist variant the suite names.
func (s *Suite) LoadBlocklists() ([]Blocklist, error) {
	lists := make([]Blocklist, 0, len(s.Blocklists))
	for _, name := range s.Blocklists {
		path := filepath.Join(s.BlocklistDir, fmt.Sprintf("blocklist_%s.txt", name))
		patterns, err := blocklist.Load(path)
		if err != nil {
			return nil, err
		}
		lists = append(lists, Blocklist{Name: name, Patterns: patterns})
	}
	return lists, nil
}

// LoadCases reads every test text the suite names.
func (s *Suite) LoadCases() ([]Case, error) {
	cases := make([]Case, 0, len(s.Cases))
	for _, name := range s.Cases {
		data, err := os.ReadFile(filepath.Join(s.CaseDir, name+".txt"))
		if err != nil {
			return nil, fmt.Errorf("failed to read case %s: %w", name, err)
		}
		cases = append(cases, Case{Name: name, Text: string(data)})
	}
	return cases, nil
}
