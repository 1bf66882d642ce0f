// Package scenario loads world-build-time definitions: gang territories and
// the starting population. Files are JSON, validated against an embedded
// schema before decoding so a bad file fails loudly at startup rather than
// as a silent zero value mid-simulation.
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"brickton.sim/internal/sim/npc"
	"brickton.sim/internal/sim/voxel"
)

//go:embed scenario.schema.json
var schemaSrc string

var schema = jsonschema.MustCompileString("scenario.schema.json", schemaSrc)

type Scenario struct {
	Name        string         `json:"name"`
	Territories []TerritoryDef `json:"territories"`
	Spawns      []SpawnDef     `json:"spawns"`
}

type TerritoryDef struct {
	Name   string     `json:"name"`
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

type SpawnDef struct {
	Archetype string     `json:"archetype"`
	Count     int        `json:"count"`
	Around    [3]float64 `json:"around"`
	Radius    float64    `json:"radius"`
}

func Load(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Scenario, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Scenario{}, fmt.Errorf("scenario: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Scenario{}, fmt.Errorf("scenario: %w", err)
	}
	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return Scenario{}, fmt.Errorf("scenario: %w", err)
	}
	for _, sp := range s.Spawns {
		if _, err := ParseArchetype(sp.Archetype); err != nil {
			return Scenario{}, err
		}
	}
	return s, nil
}

// Territories converts the definitions to the core's immutable circles.
func (s Scenario) TerritoryList() []npc.Territory {
	out := make([]npc.Territory, 0, len(s.Territories))
	for _, t := range s.Territories {
		out = append(out, npc.Territory{
			Name:   t.Name,
			Center: vec3(t.Center),
			Radius: t.Radius,
		})
	}
	return out
}

func ParseArchetype(s string) (npc.Archetype, error) {
	switch s {
	case "civilian":
		return npc.Civilian, nil
	case "officer":
		return npc.Officer, nil
	case "gang":
		return npc.Gang, nil
	case "demolition":
		return npc.Demolition, nil
	}
	return 0, fmt.Errorf("scenario: unknown archetype %q", s)
}

func (d SpawnDef) Center() voxel.Vec3 { return vec3(d.Around) }

func vec3(a [3]float64) voxel.Vec3 {
	return voxel.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
