package main

import (
	"encoding/json"
	"os"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/akulearn/sandbox/types"
)

// graphDoc is the on-disk shape of a workflow graph, in YAML or JSON.
type graphDoc struct {
	Nodes []*types.Node `yaml:"nodes" json:"nodes"`
}

func readGraphFile(path string) ([]*types.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}

	doc := &graphDoc{}
	if err := yaml.Unmarshal(b, doc); err != nil {
		return nil, errors.Annotatef(err, "parsing graph file %s", path)
	}
	if len(doc.Nodes) == 0 {
		return nil, errors.BadRequestf("graph file %s has no nodes", path)
	}
	return doc.Nodes, nil
}

func readAttemptFile(path string) (*types.Attempt, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}

	attempt := &types.Attempt{}
	if err := yaml.Unmarshal(b, attempt); err != nil {
		return nil, errors.Annotatef(err, "parsing attempt file %s", path)
	}
	return attempt, nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	_, err = os.Stdout.Write(append(b, '\n'))
	return errors.Trace(err)
}
