// Package mapio reads planning instances and writes schedules as YAML.
//
// Files whose name ends in ".zst" are zstd-compressed transparently.
package mapio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

// Document is the on-disk instance format.
type Document struct {
	Map    MapDoc     `yaml:"map"`
	Agents []AgentDoc `yaml:"agents"`
}

// MapDoc holds grid dimensions and blocked cells.
type MapDoc struct {
	Dimensions []int   `yaml:"dimensions,flow"`
	Obstacles  [][]int `yaml:"obstacles,flow"`
}

// AgentDoc is one agent entry.
type AgentDoc struct {
	Name  string `yaml:"name"`
	Start []int  `yaml:"start,flow"`
	Goal  []int  `yaml:"goal,flow"`
}

// ScheduleDoc is the on-disk schedule format.
type ScheduleDoc struct {
	Schedule map[string][]core.Record `yaml:"schedule"`
	Cost     int                      `yaml:"cost"`
}

// LoadInstance reads, validates and converts an instance file.
func LoadInstance(path string) (*core.Instance, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading instance: %w", err)
	}
	inst, err := ParseInstance(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// ParseInstance decodes and validates an instance document.
func ParseInstance(data []byte) (*core.Instance, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: parsing instance: %v", core.ErrInvalidInput, err)
	}
	untagTuples(&root)

	var tree any
	if err := root.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: parsing instance: %v", core.ErrInvalidInput, err)
	}
	if err := validateShape(tree); err != nil {
		return nil, err
	}

	var doc Document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding instance: %v", core.ErrInvalidInput, err)
	}

	inst := doc.Instance()
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// untagTuples rewrites Python tuple tags, as emitted by PyYAML, to plain
// sequences.
func untagTuples(n *yaml.Node) {
	if n.Kind == yaml.SequenceNode && strings.HasSuffix(n.Tag, "python/tuple") {
		n.Tag = "!!seq"
	}
	for _, c := range n.Content {
		untagTuples(c)
	}
}

// Instance converts the document. Shape is assumed to be schema-valid.
func (d *Document) Instance() *core.Instance {
	var obstacles []core.Location
	for _, o := range d.Map.Obstacles {
		obstacles = append(obstacles, cell(o))
	}
	inst := &core.Instance{
		Map: core.NewGridMap(d.Map.Dimensions[0], d.Map.Dimensions[1], obstacles),
	}
	for _, a := range d.Agents {
		inst.AddAgent(a.Name, cell(a.Start), cell(a.Goal))
	}
	return inst
}

func cell(v []int) core.Location {
	if len(v) < 2 {
		return core.Location{X: -1, Y: -1}
	}
	return core.Location{X: v[0], Y: v[1]}
}

// NewDocument converts an instance into its on-disk form.
func NewDocument(inst *core.Instance) *Document {
	doc := &Document{
		Map: MapDoc{
			Dimensions: []int{inst.Map.Width, inst.Map.Height},
			Obstacles:  [][]int{},
		},
	}
	for _, o := range inst.Map.Obstacles() {
		doc.Map.Obstacles = append(doc.Map.Obstacles, []int{o.X, o.Y})
	}
	for _, a := range inst.Agents {
		doc.Agents = append(doc.Agents, AgentDoc{
			Name:  a.Name,
			Start: []int{a.Start.X, a.Start.Y},
			Goal:  []int{a.Goal.X, a.Goal.Y},
		})
	}
	return doc
}

// WriteInstance writes an instance file.
func WriteInstance(path string, inst *core.Instance) error {
	data, err := yaml.Marshal(NewDocument(inst))
	if err != nil {
		return fmt.Errorf("encoding instance: %w", err)
	}
	return writeFile(path, data)
}

// NewScheduleDoc converts a schedule into its on-disk form.
func NewScheduleDoc(s *core.Schedule) *ScheduleDoc {
	doc := &ScheduleDoc{
		Schedule: make(map[string][]core.Record, len(s.Paths)),
		Cost:     s.Cost,
	}
	for _, name := range s.Order {
		doc.Schedule[name] = s.Records(name)
	}
	return doc
}

// WriteSchedule writes a schedule file.
func WriteSchedule(path string, s *core.Schedule) error {
	data, err := EncodeSchedule(s)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// EncodeSchedule renders a schedule as YAML.
func EncodeSchedule(s *core.Schedule) ([]byte, error) {
	data, err := yaml.Marshal(NewScheduleDoc(s))
	if err != nil {
		return nil, fmt.Errorf("encoding schedule: %w", err)
	}
	return data, nil
}

// ReadSchedule reads a schedule file.
func ReadSchedule(path string) (*ScheduleDoc, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}
	var doc ScheduleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}
	return &doc, nil
}

// ToSchedule rebuilds a schedule with agents in name order. The cost is
// recomputed from the records.
func (d *ScheduleDoc) ToSchedule() *core.Schedule {
	paths := make(map[string]core.Path, len(d.Schedule))
	names := make([]string, 0, len(d.Schedule))
	for name, recs := range d.Schedule {
		names = append(names, name)
		path := make(core.Path, len(recs))
		for i, r := range recs {
			path[i] = core.At(r.T, r.X, r.Y)
		}
		paths[name] = path
	}
	sort.Strings(names)
	return core.Aggregate(names, paths)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !isCompressed(path) {
		return data, nil
	}

	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if !isCompressed(path) {
		return os.WriteFile(path, data, 0o644)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}
