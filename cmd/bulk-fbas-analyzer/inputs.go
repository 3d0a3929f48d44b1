package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// inputDataPoint names one FBAS (and optionally its organizations document)
// to analyze, along with the label it should be reported under.
type inputDataPoint struct {
	Label             string
	NodesPath         string
	OrganizationsPath string
}

// batchEntry is one line of a YAML batch-config file, the alternative to
// passing a directory or a flat list of paths on the command line.
type batchEntry struct {
	Label             string `yaml:"label"`
	NodesPath         string `yaml:"nodesPath"`
	OrganizationsPath string `yaml:"organizationsPath,omitempty"`
}

func loadBatchConfig(path string) ([]inputDataPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch config %q: %w", path, err)
	}
	var entries []batchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing batch config %q: %w", path, err)
	}
	out := make([]inputDataPoint, len(entries))
	for i, e := range entries {
		out[i] = inputDataPoint{Label: e.Label, NodesPath: e.NodesPath, OrganizationsPath: e.OrganizationsPath}
	}
	return out, nil
}

// expandPaths resolves the CLI's positional arguments into a flat list of
// candidate JSON files: a directory argument expands to every *.json file
// directly inside it, a file argument passes through unchanged.
func expandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %q: %w", arg, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				out = append(out, filepath.Join(arg, e.Name()))
			}
		}
	}
	return out, nil
}

// buildInputs pairs up nodes files with any organizations file sharing the
// same extracted label, mirroring the original driver's naming convention:
// `(X_)organizations(_Y).json` pairs with `X_(nodes_)Y.json`.
func buildInputs(paths []string, ignoreForLabel string) ([]inputDataPoint, error) {
	var nodesPaths []string
	orgPathsByLabel := make(map[string]string)

	for _, p := range paths {
		name := filepath.Base(p)
		if !strings.HasSuffix(name, ".json") {
			return nil, fmt.Errorf("unrecognized input file %q: expected a .json file", p)
		}
		if strings.Contains(name, "organizations") {
			orgPathsByLabel[extractLabel(name, ignoreForLabel)] = p
		} else {
			nodesPaths = append(nodesPaths, p)
		}
	}

	inputs := make([]inputDataPoint, len(nodesPaths))
	for i, p := range nodesPaths {
		label := extractLabel(filepath.Base(p), ignoreForLabel)
		inputs[i] = inputDataPoint{
			Label:             label,
			NodesPath:         p,
			OrganizationsPath: orgPathsByLabel[label],
		}
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Label < inputs[j].Label })
	return inputs, nil
}

func extractLabel(fileName, ignoreForLabel string) string {
	ignore := map[string]bool{"nodes": true, "organizations": true, ignoreForLabel: true}
	trimmed := strings.TrimSuffix(fileName, ".json")
	var parts []string
	for _, part := range strings.Split(trimmed, "_") {
		if part == "" || ignore[part] {
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "_")
}
