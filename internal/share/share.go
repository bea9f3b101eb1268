// Package share implements the compact problem encoding used for sharing a
// problem via a URL fragment, plus QR images of share links. The encoding
// covers the requirement list, spinnable colors and grid settings; parts are
// resolved against the catalog on the receiving side, so only indices
// travel.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/GridFit/internal/model"
)

// Tri-states travel as 1 (must), 0 (must not), -1 (either); an unbounded
// max bug level travels as -1.
type wireConstraint struct {
	Compressed    int `json:"compressed"`
	OnCommandLine int `json:"onCommandLine"`
	MinBugLevel   int `json:"minBugLevel"`
	MaxBugLevel   int `json:"maxBugLevel"`
}

type wireRequirement struct {
	PartIndex  int            `json:"partIndex"`
	Constraint wireConstraint `json:"constraint"`
}

type wireGridSettings struct {
	Height         int  `json:"height"`
	Width          int  `json:"width"`
	HasOob         bool `json:"hasOob"`
	CommandLineRow int  `json:"commandLineRow"`
}

type wireProblem struct {
	Requirements    []wireRequirement `json:"requirements"`
	SpinnableColors []bool            `json:"spinnableColors"`
	GridSettings    wireGridSettings  `json:"gridSettings"`
}

func triToWire(t model.Tri) int {
	switch t {
	case model.TriYes:
		return 1
	case model.TriNo:
		return 0
	default:
		return -1
	}
}

func triFromWire(v int) (model.Tri, error) {
	switch v {
	case 1:
		return model.TriYes, nil
	case 0:
		return model.TriNo, nil
	case -1:
		return model.TriEither, nil
	default:
		return model.TriEither, fmt.Errorf("invalid tri-state value %d", v)
	}
}

// Encode serializes a problem's shareable fields to a compact string.
func Encode(p model.Problem) string {
	w := wireProblem{
		SpinnableColors: p.SpinnableColors,
		GridSettings: wireGridSettings{
			Height:         p.GridSettings.Height,
			Width:          p.GridSettings.Width,
			HasOob:         p.GridSettings.HasOob,
			CommandLineRow: p.GridSettings.CommandLineRow,
		},
	}
	for _, req := range p.Requirements {
		w.Requirements = append(w.Requirements, wireRequirement{
			PartIndex: req.PartIndex,
			Constraint: wireConstraint{
				Compressed:    triToWire(req.Constraint.Compressed),
				OnCommandLine: triToWire(req.Constraint.OnCommandLine),
				MinBugLevel:   req.Constraint.MinBugLevel,
				MaxBugLevel:   req.Constraint.MaxBugLevel,
			},
		})
	}

	data, _ := json.Marshal(w)
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode parses an encoded string back into requirements, spinnable colors
// and grid settings. The caller supplies parts from its catalog to build a
// full Problem.
func Decode(encoded string) ([]model.Requirement, []bool, model.GridSettings, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, model.GridSettings{}, fmt.Errorf("invalid share string: %w", err)
	}
	var w wireProblem
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, nil, model.GridSettings{}, fmt.Errorf("invalid share payload: %w", err)
	}

	var reqs []model.Requirement
	for i, wr := range w.Requirements {
		compressed, err := triFromWire(wr.Constraint.Compressed)
		if err != nil {
			return nil, nil, model.GridSettings{}, fmt.Errorf("requirement %d: %w", i, err)
		}
		onCommandLine, err := triFromWire(wr.Constraint.OnCommandLine)
		if err != nil {
			return nil, nil, model.GridSettings{}, fmt.Errorf("requirement %d: %w", i, err)
		}
		reqs = append(reqs, model.Requirement{
			PartIndex: wr.PartIndex,
			Constraint: model.Constraint{
				Compressed:    compressed,
				OnCommandLine: onCommandLine,
				MinBugLevel:   wr.Constraint.MinBugLevel,
				MaxBugLevel:   wr.Constraint.MaxBugLevel,
			},
		})
	}

	gs := model.GridSettings{
		Height:         w.GridSettings.Height,
		Width:          w.GridSettings.Width,
		HasOob:         w.GridSettings.HasOob,
		CommandLineRow: w.GridSettings.CommandLineRow,
	}
	return reqs, w.SpinnableColors, gs, nil
}

// URL builds a share link by appending the encoded problem as a fragment.
func URL(base string, p model.Problem) string {
	return base + "#" + Encode(p)
}

// QRPNG renders a share link as a PNG QR code of the given pixel size.
func QRPNG(url string, size int) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, size)
}
