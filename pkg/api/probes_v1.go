// pkg/api/probes_v1.go
package api

// ProbeV1 is the stable JSON/JSONL schema for designed probes.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ProbeV1 struct {
	SequenceID string  `json:"sequence_id"`
	DesiredDG  float64 `json:"dg_opt"`
	Start      int     `json:"start"` // target coordinates, half-open
	End        int     `json:"end"`
	Length     int     `json:"length"`
	Seq        string  `json:"seq"`
	Score      float64 `json:"dg_score"`
	DG37       float64 `json:"dg37"`
	GC         float64 `json:"gc"`

	Filters FiltersV1 `json:"filters"`

	PNASCount      int     `json:"pnas_count"`
	MaskedFraction float64 `json:"masked_fraction"`
	Accepted       bool    `json:"accepted"`

	FlapX string `json:"flap_x,omitempty"`
	FlapY string `json:"flap_y,omitempty"`
	FlapZ string `json:"flap_z,omitempty"`
}

// FiltersV1 holds the individual screen outcomes.
type FiltersV1 struct {
	GC         bool `json:"gc"`
	AComp      bool `json:"a_comp"`
	AStack     bool `json:"a_stack"`
	CComp      bool `json:"c_comp"`
	CStack     bool `json:"c_stack"`
	CSpecStack bool `json:"c_spec_stack"`
	PNAS       bool `json:"pnas"`
	Masked     bool `json:"masked"`
}
