package forestfire

import (
	"math"
	"strconv"

	"forest-fire/internal/core"
)

// Parameters reports the tunables of the forest. Changes take effect on the
// next Reset.
func (f *Forest) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", f.cfg.Width),
				intParam("h", "Height", f.cfg.Height),
				{
					Key:   "seed",
					Label: "Seed",
					Type:  core.ParamTypeInt,
					Value: strconv.FormatInt(f.cfg.Seed, 10),
				},
			},
		},
		{
			Name: "Forest",
			Params: []core.Parameter{{
				Key:         "tree_probability",
				Label:       "Tree probability",
				Type:        core.ParamTypeFloat,
				Value:       strconv.FormatFloat(f.cfg.TreeProbability, 'f', -1, 64),
				Description: "chance that a cell right of the ignition front starts as a tree",
			}},
		},
	}}
}

// SetFloatParameter updates a floating point tunable, clamping to its range.
func (f *Forest) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "tree_probability":
		if math.IsNaN(value) {
			return false
		}
		f.cfg.TreeProbability = min(max(value, 0), 1)
		return true
	}
	return false
}

// SetIntParameter updates an integer tunable. Dimensions must lie in
// [1, MaxDimension].
func (f *Forest) SetIntParameter(key string, value int) bool {
	switch key {
	case "w":
		if !validDimension(value) {
			return false
		}
		f.cfg.Width = value
	case "h":
		if !validDimension(value) {
			return false
		}
		f.cfg.Height = value
	case "seed":
		f.cfg.Seed = int64(value)
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}
