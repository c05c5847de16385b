package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gorewrite/pkg/knuthbendix"
)

// presentationFile is the on-disk YAML shape of a presentation.
type presentationFile struct {
	Alphabet  string     `yaml:"alphabet"`
	EmptyWord bool       `yaml:"empty_word"`
	Relations [][]string `yaml:"relations"`
}

func loadPresentationFile(path string) (*knuthbendix.KnuthBendix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf presentationFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p, err := knuthbendix.NewPresentation(pf.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.ContainsEmptyWord = pf.EmptyWord
	kb := knuthbendix.New(p)
	for i, rel := range pf.Relations {
		if len(rel) != 2 {
			return nil, fmt.Errorf("%s: relation %d has %d words, want 2", path, i, len(rel))
		}
		if err := kb.AddRule(rel[0], rel[1]); err != nil {
			return nil, fmt.Errorf("%s: relation %d: %w", path, i, err)
		}
	}
	return kb, nil
}
