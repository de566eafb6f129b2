package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sts08015/rv32i-pipeline/pkg/loader"
)

// expectFile is the on-disk shape of a scenario's expect.yaml: the cycle
// count to run for, the memory depth, and the expected register values,
// keyed by integer register index.
type expectFile struct {
	Cycles   int            `yaml:"cycles"`
	MemDepth int            `yaml:"mem_depth"`
	Expect   map[int]uint32 `yaml:"expect"`
}

// LoadScenarioDir reads every subdirectory of dir as one Scenario: an
// imem.txt (required, §6 binary format), an optional dmem.txt (§6 hex
// format), and an expect.yaml describing the cycle count and expected
// register values.
func LoadScenarioDir(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]Scenario, 0, len(names))
	for _, name := range names {
		s, err := loadScenario(filepath.Join(dir, name), name)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", name, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func loadScenario(dir, name string) (Scenario, error) {
	imem, err := loader.LoadInstructions(filepath.Join(dir, "imem.txt"))
	if err != nil {
		return Scenario{}, err
	}

	var dmem []uint32
	if _, err := os.Stat(filepath.Join(dir, "dmem.txt")); err == nil {
		dmem, err = loader.LoadData(filepath.Join(dir, "dmem.txt"))
		if err != nil {
			return Scenario{}, err
		}
	}

	expectBytes, err := os.ReadFile(filepath.Join(dir, "expect.yaml"))
	if err != nil {
		return Scenario{}, err
	}
	var ef expectFile
	if err := yaml.Unmarshal(expectBytes, &ef); err != nil {
		return Scenario{}, fmt.Errorf("expect.yaml: %w", err)
	}

	expect := make(map[uint8]uint32, len(ef.Expect))
	for reg, val := range ef.Expect {
		expect[uint8(reg)] = val
	}

	return Scenario{
		Name:     name,
		IMem:     imem,
		DMem:     dmem,
		Cycles:   ef.Cycles,
		MemDepth: ef.MemDepth,
		Expect:   expect,
	}, nil
}
